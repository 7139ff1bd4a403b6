package httpadapter

import (
	"context"
	"log/slog"

	"warden/contexts/community-engagement/poll-service/application"
	"warden/contexts/community-engagement/poll-service/domain/entities"
	httptransport "warden/contexts/community-engagement/poll-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreatePollHandler(
	ctx context.Context,
	authorID string,
	req httptransport.CreatePollRequest,
) (httptransport.PollResponse, error) {
	poll, err := h.Service.Create(ctx, req.AnchorID, req.Question, req.Options, authorID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	anchorID, voterID string,
	req httptransport.CastVoteRequest,
) (httptransport.PollResponse, error) {
	poll, err := h.Service.CastVote(ctx, anchorID, voterID, req.Option)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

func (h Handler) ClosePollHandler(
	ctx context.Context,
	anchorID, actorID string,
	isAdmin bool,
) (httptransport.PollResponse, error) {
	poll, err := h.Service.Close(ctx, anchorID, actorID, isAdmin)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

func (h Handler) GetPollHandler(ctx context.Context, anchorID string) (httptransport.PollResponse, error) {
	poll, err := h.Service.Get(ctx, anchorID)
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return toPollResponse(poll), nil
}

func toPollResponse(poll entities.Poll) httptransport.PollResponse {
	resp := httptransport.PollResponse{Status: "success"}
	dto := httptransport.PollDTO{
		AnchorID: poll.AnchorID,
		Question: poll.Question,
		AuthorID: poll.AuthorID,
		Voters:   poll.TotalVoters(),
	}
	counts := poll.Tally()
	for i, label := range poll.Options {
		dto.Options = append(dto.Options, httptransport.OptionTallyDTO{
			Label:  label,
			Count:  counts[i],
			Voters: poll.Votes[i],
		})
	}
	resp.Data.Poll = dto
	return resp
}
