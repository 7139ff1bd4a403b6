package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"warden/contexts/community-economy/shop-service/domain/entities"
	domainerrors "warden/contexts/community-economy/shop-service/domain/errors"
	"warden/contexts/community-economy/shop-service/ports"
)

type Service struct {
	Repo     ports.Repository
	Ledger   ports.Ledger
	Gateway  ports.Gateway
	Settings ports.Settings
	Locker   ports.Locker
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// PurchaseResult reports a completed purchase. Warnings carry reward-dispatch
// failures: the debit stands and staff remediate by hand.
type PurchaseResult struct {
	Item              entities.Item
	NewBalance        int
	RoleGranted       bool
	ManualFulfillment bool
	Warnings          []string
}

// Purchase runs the four precondition checks in fixed priority order and, on
// success, applies debit + stock decrement + ownership record under the item
// and ledger-row locks so two racing buyers can never oversell or double-spend.
func (s Service) Purchase(ctx context.Context, userID, itemID string) (PurchaseResult, error) {
	logger := resolveLogger(s.Logger)
	userID = strings.TrimSpace(userID)
	itemID = strings.TrimSpace(itemID)
	if userID == "" || itemID == "" {
		return PurchaseResult{}, domainerrors.ErrInvalidRequest
	}

	unlockItem := s.Locker.Lock("shop/item/" + itemID)
	defer unlockItem()
	unlockUser := s.Locker.Lock("ledger/user/" + userID)
	defer unlockUser()

	item, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if item.StockTracked() && *item.Stock <= 0 {
		return PurchaseResult{}, domainerrors.ErrSoldOut
	}
	if item.Category.IsUniqueReward() {
		owned, err := s.Repo.HasPurchase(ctx, userID, itemID)
		if err != nil {
			return PurchaseResult{}, err
		}
		if owned {
			return PurchaseResult{}, domainerrors.ErrAlreadyOwned
		}
	}
	balance, err := s.Ledger.Balance(ctx, userID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if balance < item.Cost {
		return PurchaseResult{}, domainerrors.ErrInsufficientFunds
	}

	newBalance, err := s.Ledger.Adjust(ctx, userID, -item.Cost)
	if err != nil {
		return PurchaseResult{}, err
	}
	if err := s.Repo.ApplyPurchase(ctx, userID, item); err != nil {
		// Lost race against another instance: hand the points back and
		// surface the precondition error the buyer would have hit.
		if _, creditErr := s.Ledger.Adjust(ctx, userID, item.Cost); creditErr != nil {
			logger.Error("purchase credit-back failed",
				"event", "shop_purchase_credit_back_failed",
				"module", "community-economy/shop-service",
				"layer", "application",
				"user_id", userID,
				"item_id", itemID,
				"error", creditErr.Error(),
			)
		}
		return PurchaseResult{}, err
	}

	result := PurchaseResult{Item: item, NewBalance: newBalance}
	s.dispatchReward(ctx, userID, item, &result)

	if channel := s.Settings.LogChannel(); channel != "" {
		if err := s.Gateway.Notify(ctx, channel, "",
			fmt.Sprintf("shop purchase: user %s bought %q (item %s) for %d points", userID, item.Name, item.ItemID, item.Cost),
		); err != nil {
			result.Warnings = append(result.Warnings, "audit notification failed: "+err.Error())
		}
	}

	logger.Info("shop purchase completed",
		"event", "shop_purchase_completed",
		"module", "community-economy/shop-service",
		"layer", "application",
		"user_id", userID,
		"item_id", item.ItemID,
		"cost", item.Cost,
		"balance", newBalance,
		"role_granted", result.RoleGranted,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// dispatchReward hands out the reward best-effort. Nothing here unwinds the
// purchase; failures become warnings plus a shop-channel alert.
func (s Service) dispatchReward(ctx context.Context, userID string, item entities.Item, result *PurchaseResult) {
	if item.RoleRef != "" {
		if err := s.Gateway.GrantRole(ctx, userID, item.RoleRef); err != nil {
			result.Warnings = append(result.Warnings, "role grant failed, staff notified: "+err.Error())
			if channel := s.Settings.ShopChannel(); channel != "" {
				if alertErr := s.Gateway.Notify(ctx, channel, "",
					fmt.Sprintf("automation failure: user %s bought role item %q (item %s) but the grant failed; please assign manually", userID, item.Name, item.ItemID),
				); alertErr != nil {
					result.Warnings = append(result.Warnings, "shop alert failed: "+alertErr.Error())
				}
			}
			return
		}
		result.RoleGranted = true
		return
	}

	result.ManualFulfillment = true
	if !item.Category.RequiresManualNotice() {
		return
	}
	channel := s.Settings.ShopChannel()
	if channel == "" {
		return
	}
	roles := strings.Join(s.Settings.ManualRewardRoles(), " ")
	if err := s.Gateway.Notify(ctx, channel, roles,
		fmt.Sprintf("new shop purchase: user %s bought %q (item %s) for %d points; manual fulfillment required", userID, item.Name, item.ItemID, item.Cost),
	); err != nil {
		result.Warnings = append(result.Warnings, "manual-fulfillment notice failed: "+err.Error())
	}
}

// CreateItem adds a manually-fulfilled catalog entry.
func (s Service) CreateItem(
	ctx context.Context,
	name, description string,
	cost int,
	category entities.ItemCategory,
) (entities.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" || cost <= 0 {
		return entities.Item{}, domainerrors.ErrInvalidRequest
	}
	if _, ok := entities.ParseItemCategory(string(category)); !ok || category.IsUniqueReward() {
		return entities.Item{}, domainerrors.ErrInvalidCategory
	}

	itemID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Item{}, err
	}
	item := entities.Item{
		ItemID:      itemID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Cost:        cost,
		Category:    category,
	}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return entities.Item{}, err
	}
	return item, nil
}

// CreateRoleItem adds a stocked, auto-granted role item in the unique-reward
// category.
func (s Service) CreateRoleItem(
	ctx context.Context,
	name, description string,
	cost int,
	roleRef string,
	stock int,
) (entities.Item, error) {
	name = strings.TrimSpace(name)
	roleRef = strings.TrimSpace(roleRef)
	if name == "" || roleRef == "" || cost <= 0 || stock <= 0 {
		return entities.Item{}, domainerrors.ErrInvalidRequest
	}

	itemID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Item{}, err
	}
	item := entities.Item{
		ItemID:      itemID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Cost:        cost,
		Category:    entities.CategoryUniqueRole,
		RoleRef:     roleRef,
		Stock:       &stock,
	}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return entities.Item{}, err
	}
	return item, nil
}

func (s Service) DeleteItem(ctx context.Context, itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return domainerrors.ErrInvalidRequest
	}
	return s.Repo.DeleteItem(ctx, itemID)
}

func (s Service) ListItems(ctx context.Context, category entities.ItemCategory) ([]entities.Item, error) {
	if _, ok := entities.ParseItemCategory(string(category)); !ok {
		return nil, domainerrors.ErrInvalidCategory
	}
	return s.Repo.ListItems(ctx, category)
}
