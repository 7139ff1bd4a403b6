package queries

import (
	"context"
	"strings"

	"warden/contexts/community-workflow/submission-service/domain/entities"
	domainerrors "warden/contexts/community-workflow/submission-service/domain/errors"
	"warden/contexts/community-workflow/submission-service/ports"
)

type UserSubmissionsQuery struct {
	Repository ports.Repository
}

// Execute returns the user's submissions grouped by category.
func (q UserSubmissionsQuery) Execute(ctx context.Context, submitterID string) (map[entities.Category][]entities.Submission, error) {
	submitterID = strings.TrimSpace(submitterID)
	if submitterID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return q.Repository.ListBySubmitter(ctx, submitterID)
}

type ActivitySummary struct {
	UserID  string
	Counts  map[entities.Category]int
	Balance int
}

type ActivitySummaryQuery struct {
	Repository ports.Repository
	Balances   ports.Balances
}

// Execute returns per-category submission counts plus the reputation balance.
func (q ActivitySummaryQuery) Execute(ctx context.Context, userID string) (ActivitySummary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ActivitySummary{}, domainerrors.ErrInvalidRequest
	}

	counts, err := q.Repository.CountBySubmitter(ctx, userID)
	if err != nil {
		return ActivitySummary{}, err
	}
	balance, err := q.Balances.Balance(ctx, userID)
	if err != nil {
		return ActivitySummary{}, err
	}
	return ActivitySummary{UserID: userID, Counts: counts, Balance: balance}, nil
}
