package application

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "warden/contexts/community-economy/reputation-service/domain/errors"
	"warden/contexts/community-economy/reputation-service/ports"
)

// Mode selects how Adjust applies its amount.
type Mode string

const (
	ModeAdd Mode = "add"
	ModeSet Mode = "set"
)

type Service struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

// Adjust mutates a user's balance and returns the result. Add-mode deltas may
// be negative and sequential adds compose: adjust(+5) then adjust(+3) lands
// on the same balance as a single adjust(+8).
func (s Service) Adjust(ctx context.Context, userID string, amount int, mode Mode) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, domainerrors.ErrInvalidRequest
	}

	var (
		balance int
		err     error
	)
	switch mode {
	case ModeAdd:
		balance, err = s.Repo.AddPoints(ctx, userID, amount)
	case ModeSet:
		balance, err = s.Repo.SetPoints(ctx, userID, amount)
	default:
		return 0, domainerrors.ErrInvalidMode
	}
	if err != nil {
		return 0, err
	}

	resolveLogger(s.Logger).Info("reputation adjusted",
		"event", "reputation_adjusted",
		"module", "community-economy/reputation-service",
		"layer", "application",
		"user_id", userID,
		"mode", string(mode),
		"amount", amount,
		"balance", balance,
	)
	return balance, nil
}

// Balance reports the current balance, zero for users without an account.
func (s Service) Balance(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetPoints(ctx, userID)
}

// Leaderboard returns the top balances in descending order.
func (s Service) Leaderboard(ctx context.Context, limit int) ([]ports.Account, error) {
	if limit < 0 {
		return nil, domainerrors.ErrInvalidRequest
	}
	if limit == 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.Repo.Top(ctx, limit)
}
