package ports

import (
	"context"
	"time"

	"warden/contexts/community-economy/shop-service/domain/entities"
)

type Repository interface {
	CreateItem(ctx context.Context, item entities.Item) error
	DeleteItem(ctx context.Context, itemID string) error
	GetItem(ctx context.Context, itemID string) (entities.Item, error)
	// ListItems returns a category's items sorted by cost ascending.
	ListItems(ctx context.Context, category entities.ItemCategory) ([]entities.Item, error)
	HasPurchase(ctx context.Context, userID, itemID string) (bool, error)
	// ApplyPurchase decrements tracked stock and records unique-reward
	// ownership as one store-local transaction. It re-checks both
	// preconditions and returns ErrSoldOut / ErrAlreadyOwned on a lost race.
	ApplyPurchase(ctx context.Context, userID string, item entities.Item) error
}

// Ledger is the reputation balance collaborator. Adjust is add-mode.
type Ledger interface {
	Balance(ctx context.Context, userID string) (int, error)
	Adjust(ctx context.Context, userID string, delta int) (int, error)
}

// Gateway reaches the chat platform. Every call is single-attempt;
// failures surface as warnings, never as purchase errors.
type Gateway interface {
	GrantRole(ctx context.Context, userID, roleRef string) error
	Notify(ctx context.Context, channelRef, roleRefs, message string) error
}

// Settings exposes the runtime shop configuration.
type Settings interface {
	ShopChannel() string
	ManualRewardRoles() []string
	LogChannel() string
}

type Locker interface {
	Lock(key string) func()
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
