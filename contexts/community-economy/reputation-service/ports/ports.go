package ports

import "context"

// Account is one reputation balance row. Accounts materialize lazily at zero
// on first mutation; reads of unknown users report zero without creating a row.
type Account struct {
	UserID string
	Points int
}

type Repository interface {
	// AddPoints applies a signed delta, creating the account at zero first,
	// and returns the resulting balance. No floor: admin removals may drive
	// a balance negative.
	AddPoints(ctx context.Context, userID string, delta int) (int, error)
	// SetPoints replaces the balance outright and returns it.
	SetPoints(ctx context.Context, userID string, points int) (int, error)
	GetPoints(ctx context.Context, userID string) (int, error)
	Top(ctx context.Context, limit int) ([]Account, error)
}
