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

type CreateSubmissionCommand struct {
	SubmitterID     string
	DisplayName     string
	Category        entities.Category
	Scope           entities.Scope
	ApplicationRole entities.ApplicationRole
	Title           string
	Fields          []entities.Field
}

type CreateSubmissionUseCase struct {
	Repository ports.Repository
	Gateway    ports.Gateway
	Settings   ports.Settings
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)

	if _, ok := entities.ParseCategory(string(cmd.Category)); !ok {
		return entities.Submission{}, domainerrors.ErrInvalidRequest
	}
	if _, ok := entities.ParseScope(string(cmd.Scope)); !ok {
		return entities.Submission{}, domainerrors.ErrInvalidRequest
	}
	if cmd.Category == entities.CategoryApplication {
		role, ok := entities.ParseApplicationRole(string(cmd.ApplicationRole))
		if !ok {
			return entities.Submission{}, domainerrors.ErrInvalidRequest
		}
		open, err := uc.Repository.IsPositionOpen(ctx, role)
		if err != nil {
			return entities.Submission{}, err
		}
		if !open {
			return entities.Submission{}, domainerrors.ErrRecruitmentClosed
		}
	}

	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	now := uc.Clock.Now().UTC()
	submission := entities.Submission{
		SubmissionID:    submissionID,
		Category:        cmd.Category,
		Scope:           cmd.Scope,
		ApplicationRole: cmd.ApplicationRole,
		SubmitterID:     strings.TrimSpace(cmd.SubmitterID),
		DisplayName:     strings.TrimSpace(cmd.DisplayName),
		Title:           strings.TrimSpace(cmd.Title),
		Fields:          cmd.Fields,
		Status:          entities.InitialStatus(cmd.Category),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !submission.ValidateCreate() {
		return entities.Submission{}, domainerrors.ErrInvalidRequest
	}

	threadRef, err := uc.Gateway.OpenThread(ctx, submission.Title, submission.Fields)
	if err != nil {
		return entities.Submission{}, err
	}
	submission.ThreadRef = threadRef

	if err := uc.Repository.CreateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	if err := uc.Gateway.AttachControls(ctx, threadRef, entities.ActionsFor(submission.Category, submission.Status)); err != nil {
		logger.Warn("submission controls attach failed",
			"event", "submission_controls_attach_failed",
			"module", "community-workflow/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
	}

	audit := entities.DecisionAudit{
		SubmissionID: submission.SubmissionID,
		Category:     submission.Category,
		ActorID:      submission.SubmitterID,
		Action:       "created",
		CreatedAt:    now,
	}
	if err := uc.Repository.AppendAudit(ctx, audit); err != nil {
		logger.Warn("submission audit append failed",
			"event", "submission_audit_failed",
			"module", "community-workflow/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
	}

	if route, ok := uc.Settings.NotificationRoute(submission.Category); ok {
		message := fmt.Sprintf("new %s from %s: %q", submission.Category, submission.DisplayName, submission.Title)
		if err := uc.Gateway.Notify(ctx, route.ChannelRef, route.RoleRefs, message); err != nil {
			logger.Warn("submission notification failed",
				"event", "submission_notify_failed",
				"module", "community-workflow/submission-service",
				"layer", "application",
				"submission_id", submission.SubmissionID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("submission created",
		"event", "submission_created",
		"module", "community-workflow/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"category", submission.Category,
		"submitter_id", submission.SubmitterID,
	)
	return submission, nil
}
