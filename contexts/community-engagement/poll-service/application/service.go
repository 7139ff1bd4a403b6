package application

import (
	"context"
	"log/slog"
	"strings"

	"warden/contexts/community-engagement/poll-service/domain/entities"
	domainerrors "warden/contexts/community-engagement/poll-service/domain/errors"
	"warden/contexts/community-engagement/poll-service/ports"
)

type Service struct {
	Repo    ports.Repository
	Gateway ports.Gateway
	Locker  ports.Locker
	Logger  *slog.Logger
}

// Create registers a poll anchored to a platform message and publishes the
// empty tally with its controls.
func (s Service) Create(ctx context.Context, anchorID, question string, options []string, authorID string) (entities.Poll, error) {
	anchorID = strings.TrimSpace(anchorID)
	question = strings.TrimSpace(question)
	authorID = strings.TrimSpace(authorID)
	if anchorID == "" || question == "" || authorID == "" {
		return entities.Poll{}, domainerrors.ErrInvalidRequest
	}

	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return entities.Poll{}, domainerrors.ErrInvalidRequest
		}
		cleaned = append(cleaned, opt)
	}
	if len(cleaned) < entities.MinOptions || len(cleaned) > entities.MaxOptions {
		return entities.Poll{}, domainerrors.ErrInvalidRequest
	}

	poll := entities.Poll{
		AnchorID: anchorID,
		Question: question,
		Options:  cleaned,
		Votes:    make([][]string, len(cleaned)),
		AuthorID: authorID,
	}
	if err := s.Repo.Save(ctx, poll); err != nil {
		return entities.Poll{}, err
	}

	s.publish(ctx, poll, false)
	if err := s.Gateway.AttachPollControls(ctx, poll.AnchorID, len(poll.Options)); err != nil {
		resolveLogger(s.Logger).Warn("poll controls attach failed",
			"event", "poll_controls_attach_failed",
			"module", "community-engagement/poll-service",
			"layer", "application",
			"anchor_id", poll.AnchorID,
			"error", err.Error(),
		)
	}
	return poll, nil
}

// CastVote applies vote-switch semantics and republishes the tally.
func (s Service) CastVote(ctx context.Context, anchorID, voterID string, option int) (entities.Poll, error) {
	anchorID = strings.TrimSpace(anchorID)
	voterID = strings.TrimSpace(voterID)
	if anchorID == "" || voterID == "" {
		return entities.Poll{}, domainerrors.ErrInvalidRequest
	}

	unlock := s.Locker.Lock("poll/" + anchorID)
	defer unlock()

	poll, err := s.Repo.Get(ctx, anchorID)
	if err != nil {
		return entities.Poll{}, err
	}
	if !poll.CastVote(voterID, option) {
		return entities.Poll{}, domainerrors.ErrInvalidOption
	}
	if err := s.Repo.Save(ctx, poll); err != nil {
		return entities.Poll{}, err
	}

	s.publish(ctx, poll, false)
	return poll, nil
}

// Close publishes the final tally and removes the poll. Only the author or an
// administrator may close.
func (s Service) Close(ctx context.Context, anchorID, actorID string, isAdmin bool) (entities.Poll, error) {
	anchorID = strings.TrimSpace(anchorID)
	actorID = strings.TrimSpace(actorID)
	if anchorID == "" || actorID == "" {
		return entities.Poll{}, domainerrors.ErrInvalidRequest
	}

	unlock := s.Locker.Lock("poll/" + anchorID)
	defer unlock()

	poll, err := s.Repo.Get(ctx, anchorID)
	if err != nil {
		return entities.Poll{}, err
	}
	if poll.AuthorID != actorID && !isAdmin {
		return entities.Poll{}, domainerrors.ErrPermissionDenied
	}

	s.publish(ctx, poll, true)
	if err := s.Repo.Delete(ctx, anchorID); err != nil {
		return entities.Poll{}, err
	}

	resolveLogger(s.Logger).Info("poll closed",
		"event", "poll_closed",
		"module", "community-engagement/poll-service",
		"layer", "application",
		"anchor_id", anchorID,
		"actor_id", actorID,
		"voters", poll.TotalVoters(),
	)
	return poll, nil
}

func (s Service) Get(ctx context.Context, anchorID string) (entities.Poll, error) {
	return s.Repo.Get(ctx, strings.TrimSpace(anchorID))
}

// RestoreControls re-attaches interactive controls for every persisted poll.
// Called once at process start so polls survive restarts.
func (s Service) RestoreControls(ctx context.Context) error {
	polls, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	logger := resolveLogger(s.Logger)
	for _, poll := range polls {
		if err := s.Gateway.AttachPollControls(ctx, poll.AnchorID, len(poll.Options)); err != nil {
			logger.Warn("poll controls restore failed",
				"event", "poll_controls_restore_failed",
				"module", "community-engagement/poll-service",
				"layer", "application",
				"anchor_id", poll.AnchorID,
				"error", err.Error(),
			)
		}
	}
	logger.Info("poll controls restored",
		"event", "poll_controls_restored",
		"module", "community-engagement/poll-service",
		"layer", "application",
		"count", len(polls),
	)
	return nil
}

func (s Service) publish(ctx context.Context, poll entities.Poll, closed bool) {
	err := s.Gateway.PublishTally(ctx, poll.AnchorID, poll.Question, poll.Options, poll.Tally(), closed)
	if err != nil {
		resolveLogger(s.Logger).Warn("poll tally publish failed",
			"event", "poll_tally_publish_failed",
			"module", "community-engagement/poll-service",
			"layer", "application",
			"anchor_id", poll.AnchorID,
			"error", err.Error(),
		)
	}
}
