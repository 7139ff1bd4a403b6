package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "warden/contexts/community-workflow/submission-service/application"
	"warden/contexts/community-workflow/submission-service/domain/entities"
	domainerrors "warden/contexts/community-workflow/submission-service/domain/errors"
	"warden/contexts/community-workflow/submission-service/ports"
)

type DecideSubmissionCommand struct {
	Category     entities.Category
	SubmissionID string
	Action       entities.Action
	ReviewerID   string
	Capabilities []entities.Capability
	Reason       string
}

// StepFailure is one failed cascade step. The decision itself stands.
type StepFailure struct {
	Step string
	Err  error
}

func (f StepFailure) String() string {
	return f.Step + ": " + f.Err.Error()
}

type DecisionResult struct {
	Submission    entities.Submission
	PointsAwarded int
	RolesGranted  []string
	Failures      []StepFailure
}

type DecideSubmissionUseCase struct {
	Repository ports.Repository
	Gateway    ports.Gateway
	Ledger     ports.Ledger
	Settings   ports.Settings
	Locker     ports.Locker
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute applies a reviewer decision. Everything before the status update is
// all-or-nothing; everything after it is best-effort and collected in
// DecisionResult.Failures.
func (uc DecideSubmissionUseCase) Execute(ctx context.Context, cmd DecideSubmissionCommand) (DecisionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	submissionID := strings.TrimSpace(cmd.SubmissionID)
	reviewerID := strings.TrimSpace(cmd.ReviewerID)
	if submissionID == "" || reviewerID == "" {
		return DecisionResult{}, domainerrors.ErrInvalidRequest
	}
	if _, ok := entities.ParseCategory(string(cmd.Category)); !ok {
		return DecisionResult{}, domainerrors.ErrInvalidRequest
	}
	if _, ok := entities.ParseAction(string(cmd.Action)); !ok {
		return DecisionResult{}, domainerrors.ErrInvalidRequest
	}

	unlock := uc.Locker.Lock("submission/" + string(cmd.Category) + "/" + submissionID)
	defer unlock()

	submission, err := uc.Repository.GetSubmission(ctx, cmd.Category, submissionID)
	if err != nil {
		return DecisionResult{}, err
	}
	if !entities.HasCapability(cmd.Capabilities, entities.RequiredCapability(submission.Scope)) {
		return DecisionResult{}, domainerrors.ErrPermissionDenied
	}
	if !entities.ActionAllowed(submission.Category, submission.Status, cmd.Action) {
		return DecisionResult{}, domainerrors.ErrInvalidTransition
	}

	now := uc.Clock.Now().UTC()
	submission.Status = entities.StatusAfter(cmd.Action)
	submission.DecidedByID = reviewerID
	submission.DecisionReason = strings.TrimSpace(cmd.Reason)
	submission.UpdatedAt = now

	// Commit point. A failure here aborts the decision with no side effects.
	if err := uc.Repository.UpdateSubmission(ctx, submission); err != nil {
		return DecisionResult{}, err
	}

	result := DecisionResult{Submission: submission}
	uc.runCascade(ctx, logger, cmd, &result, now)

	logger.Info("submission decided",
		"event", "submission_decided",
		"module", "community-workflow/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"category", submission.Category,
		"action", cmd.Action,
		"status", submission.Status,
		"reviewer_id", reviewerID,
		"points_awarded", result.PointsAwarded,
		"failures", len(result.Failures),
	)
	return result, nil
}

func (uc DecideSubmissionUseCase) runCascade(
	ctx context.Context,
	logger *slog.Logger,
	cmd DecideSubmissionCommand,
	result *DecisionResult,
	now time.Time,
) {
	submission := result.Submission

	if award := entities.Award(submission.Category, cmd.Action); award > 0 {
		if _, err := uc.Ledger.Adjust(ctx, submission.SubmitterID, award); err != nil {
			result.fail("reputation_award", err)
		} else {
			result.PointsAwarded = award
		}
	}

	if submission.Category == entities.CategoryApplication && cmd.Action == entities.ActionAccept {
		for _, roleRef := range entities.RolesForApplication(submission.ApplicationRole) {
			if err := uc.Gateway.GrantRole(ctx, submission.SubmitterID, roleRef); err != nil {
				result.fail("role_grant:"+roleRef, err)
				continue
			}
			result.RolesGranted = append(result.RolesGranted, roleRef)
		}
	}

	label := entities.StatusLabel(submission.Status)
	tone := entities.ToneFor(submission.Status)
	if err := uc.Gateway.RenderOutcome(ctx, submission.ThreadRef, label, tone, submission.DecidedByID, submission.DecisionReason); err != nil {
		result.fail("render_outcome", err)
	}

	if submission.Status.Terminal() {
		name := entities.ArchiveThreadName(submission.Status, submission.Title)
		if err := uc.Gateway.ArchiveThread(ctx, submission.ThreadRef, name); err != nil {
			result.fail("archive_thread", err)
		}
	} else {
		actions := entities.ActionsFor(submission.Category, submission.Status)
		if err := uc.Gateway.AttachControls(ctx, submission.ThreadRef, actions); err != nil {
			result.fail("attach_controls", err)
		}
	}

	if submission.Category == entities.CategoryApplication && submission.Status.Terminal() {
		message := applicationOutcomeMessage(submission)
		if err := uc.Gateway.DirectMessage(ctx, submission.SubmitterID, message); err != nil {
			result.fail("direct_message", err)
		}
	}

	audit := entities.DecisionAudit{
		SubmissionID: submission.SubmissionID,
		Category:     submission.Category,
		ActorID:      submission.DecidedByID,
		Action:       string(cmd.Action),
		Detail:       submission.DecisionReason,
		CreatedAt:    now,
	}
	if err := uc.Repository.AppendAudit(ctx, audit); err != nil {
		result.fail("audit", err)
	}

	if channel := uc.Settings.LogChannel(); channel != "" {
		message := fmt.Sprintf("%s %s decided by %s: %s %s",
			submission.Category, submission.SubmissionID, submission.DecidedByID, cmd.Action, label)
		if err := uc.Gateway.Notify(ctx, channel, "", message); err != nil {
			result.fail("log_notify", err)
		}
	}

	for _, failure := range result.Failures {
		logger.Warn("decision cascade step failed",
			"event", "submission_decision_step_failed",
			"module", "community-workflow/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"step", failure.Step,
			"error", failure.Err.Error(),
		)
	}
}

func (r *DecisionResult) fail(step string, err error) {
	r.Failures = append(r.Failures, StepFailure{Step: step, Err: err})
}

func applicationOutcomeMessage(submission entities.Submission) string {
	if submission.Status == entities.StatusAccepted {
		msg := fmt.Sprintf("Your application %q was accepted. Welcome to the team!", submission.Title)
		if submission.DecisionReason != "" {
			msg += " " + submission.DecisionReason
		}
		return msg
	}
	msg := fmt.Sprintf("Your application %q was rejected.", submission.Title)
	if submission.DecisionReason != "" {
		msg += " Reason: " + submission.DecisionReason
	}
	return msg
}
