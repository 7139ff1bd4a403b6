package application

import (
	"context"
	"errors"
	"testing"

	"warden/contexts/community-economy/reputation-service/adapters/memory"
	domainerrors "warden/contexts/community-economy/reputation-service/domain/errors"
)

func TestAdjustAddIsAssociative(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	if _, err := service.Adjust(context.Background(), "user_1", 5, ModeAdd); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	split, err := service.Adjust(context.Background(), "user_1", 3, ModeAdd)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	combined, err := service.Adjust(context.Background(), "user_2", 8, ModeAdd)
	if err != nil {
		t.Fatalf("combined add failed: %v", err)
	}
	if split != combined {
		t.Fatalf("expected +5 then +3 to equal +8, got %d vs %d", split, combined)
	}
}

func TestAdjustSetReplacesBalance(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	if _, err := service.Adjust(context.Background(), "user_1", 42, ModeAdd); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	balance, err := service.Adjust(context.Background(), "user_1", 7, ModeSet)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if balance != 7 {
		t.Fatalf("expected balance 7 after set, got %d", balance)
	}
}

func TestAdjustAllowsNegativeBalance(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	balance, err := service.Adjust(context.Background(), "user_1", -10, ModeAdd)
	if err != nil {
		t.Fatalf("negative add failed: %v", err)
	}
	if balance != -10 {
		t.Fatalf("expected -10, balances are not floored, got %d", balance)
	}
}

func TestBalanceLazilyZeroForUnknownUser(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	balance, err := service.Balance(context.Background(), "never_seen")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance for unknown user, got %d", balance)
	}
}

func TestAdjustRejectsUnknownMode(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	_, err := service.Adjust(context.Background(), "user_1", 1, Mode("multiply"))
	if !errors.Is(err, domainerrors.ErrInvalidMode) {
		t.Fatalf("expected invalid mode error, got %v", err)
	}
}

func TestLeaderboardOrdersByPointsDescending(t *testing.T) {
	service := Service{Repo: memory.NewStore()}

	seeds := map[string]int{"user_a": 3, "user_b": 12, "user_c": 7}
	for userID, points := range seeds {
		if _, err := service.Adjust(context.Background(), userID, points, ModeAdd); err != nil {
			t.Fatalf("seed for %s failed: %v", userID, err)
		}
	}

	board, err := service.Leaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	if board[0].UserID != "user_b" || board[1].UserID != "user_c" {
		t.Fatalf("unexpected order: %v", board)
	}
}
