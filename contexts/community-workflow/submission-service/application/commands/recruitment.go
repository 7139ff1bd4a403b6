package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "warden/contexts/community-workflow/submission-service/application"
	"warden/contexts/community-workflow/submission-service/domain/entities"
	domainerrors "warden/contexts/community-workflow/submission-service/domain/errors"
	"warden/contexts/community-workflow/submission-service/ports"
)

type RecruitmentUseCase struct {
	Repository ports.Repository
	Gateway    ports.Gateway
	Logger     *slog.Logger
}

func (uc RecruitmentUseCase) SetPositionOpen(ctx context.Context, position entities.ApplicationRole, open bool) error {
	logger := application.ResolveLogger(uc.Logger)
	if _, ok := entities.ParseApplicationRole(string(position)); !ok {
		return domainerrors.ErrInvalidRequest
	}
	if err := uc.Repository.SetPositionOpen(ctx, position, open); err != nil {
		return err
	}
	logger.Info("recruitment position updated",
		"event", "recruitment_position_updated",
		"module", "community-workflow/submission-service",
		"layer", "application",
		"position", position,
		"open", open,
	)
	return nil
}

func (uc RecruitmentUseCase) ListPositions(ctx context.Context) ([]entities.RecruitmentPosition, error) {
	positions, err := uc.Repository.ListPositions(ctx)
	if err != nil {
		return nil, err
	}
	// Positions never toggled are open by default; make the panel exhaustive.
	known := make(map[entities.ApplicationRole]bool, len(positions))
	for _, p := range positions {
		known[p.Position] = true
	}
	for _, role := range []entities.ApplicationRole{entities.RoleAdminJB, entities.RoleTrustedJB, entities.RoleAdminDiscord} {
		if !known[role] {
			positions = append(positions, entities.RecruitmentPosition{Position: role, Open: true})
		}
	}
	return positions, nil
}

type PanelKind string

const (
	PanelSubmissions PanelKind = "submissions"
	PanelRecruitment PanelKind = "recruitment"
)

// PublishPanel renders an entry panel into the given channel.
func (uc RecruitmentUseCase) PublishPanel(ctx context.Context, channelRef string, kind PanelKind) error {
	channelRef = strings.TrimSpace(channelRef)
	if channelRef == "" {
		return domainerrors.ErrInvalidRequest
	}

	var panel string
	switch kind {
	case PanelSubmissions:
		var lines []string
		lines = append(lines, "Submit to the community team:")
		for _, category := range entities.Categories() {
			lines = append(lines, fmt.Sprintf("- %s", category))
		}
		panel = strings.Join(lines, "\n")
	case PanelRecruitment:
		positions, err := uc.ListPositions(ctx)
		if err != nil {
			return err
		}
		var lines []string
		lines = append(lines, "Open staff positions:")
		for _, p := range positions {
			marker := "closed"
			if p.Open {
				marker = "open"
			}
			lines = append(lines, fmt.Sprintf("- %s (%s)", p.Position, marker))
		}
		panel = strings.Join(lines, "\n")
	default:
		return domainerrors.ErrInvalidRequest
	}

	return uc.Gateway.PublishPanel(ctx, channelRef, panel)
}
