package httpadapter

import (
	"context"
	"log/slog"

	"warden/contexts/community-economy/reputation-service/application"
	domainerrors "warden/contexts/community-economy/reputation-service/domain/errors"
	httptransport "warden/contexts/community-economy/reputation-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GetBalanceHandler(ctx context.Context, userID string) (httptransport.BalanceResponse, error) {
	points, err := h.Service.Balance(ctx, userID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}

	resp := httptransport.BalanceResponse{Status: "success"}
	resp.Data.UserID = userID
	resp.Data.Points = points
	return resp, nil
}

func (h Handler) AdjustHandler(
	ctx context.Context,
	userID string,
	req httptransport.AdjustRequest,
) (httptransport.AdjustResponse, error) {
	mode := application.Mode(req.Mode)
	if mode != application.ModeAdd && mode != application.ModeSet {
		return httptransport.AdjustResponse{}, domainerrors.ErrInvalidMode
	}

	balance, err := h.Service.Adjust(ctx, userID, req.Amount, mode)
	if err != nil {
		return httptransport.AdjustResponse{}, err
	}

	resp := httptransport.AdjustResponse{Status: "success"}
	resp.Data.UserID = userID
	resp.Data.Balance = balance
	return resp, nil
}

func (h Handler) LeaderboardHandler(ctx context.Context, limit int) (httptransport.LeaderboardResponse, error) {
	accounts, err := h.Service.Leaderboard(ctx, limit)
	if err != nil {
		return httptransport.LeaderboardResponse{}, err
	}

	resp := httptransport.LeaderboardResponse{Status: "success"}
	resp.Data.Leaderboard = make([]httptransport.LeaderboardEntryDTO, 0, len(accounts))
	for i, account := range accounts {
		resp.Data.Leaderboard = append(resp.Data.Leaderboard, httptransport.LeaderboardEntryDTO{
			Rank:   i + 1,
			UserID: account.UserID,
			Points: account.Points,
		})
	}
	return resp, nil
}
