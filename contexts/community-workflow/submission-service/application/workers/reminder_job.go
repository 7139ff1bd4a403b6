package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	application "warden/contexts/community-workflow/submission-service/application"
	"warden/contexts/community-workflow/submission-service/domain/entities"
	"warden/contexts/community-workflow/submission-service/ports"
)

// ReminderJob nudges the review channel about submissions that sat undecided
// past the configured number of days. Each submission is reminded at most
// once, ever.
type ReminderJob struct {
	Repository ports.Repository
	Gateway    ports.Gateway
	Settings   ports.Settings
	Locker     ports.Locker
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (j ReminderJob) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	if !j.Settings.RemindersEnabled() {
		return nil
	}

	days := j.Settings.ReminderAfterDays()
	cutoff := j.Clock.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	stale, err := j.Repository.ListStale(ctx, cutoff)
	if err != nil {
		logger.Error("reminder listing failed",
			"event", "submission_reminder_list_failed",
			"module", "community-workflow/submission-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	reminded := 0
	for _, submission := range stale {
		if j.remind(ctx, logger, submission) {
			reminded++
		}
	}

	if reminded > 0 {
		logger.Info("reminder cycle completed",
			"event", "submission_reminder_cycle_completed",
			"module", "community-workflow/submission-service",
			"layer", "worker",
			"selected_count", len(stale),
			"reminded_count", reminded,
		)
	}
	return nil
}

func (j ReminderJob) remind(ctx context.Context, logger *slog.Logger, submission entities.Submission) bool {
	unlock := j.Locker.Lock("submission/" + string(submission.Category) + "/" + submission.SubmissionID)
	defer unlock()

	// Re-read under the lock; a decision may have landed since the listing.
	current, err := j.Repository.GetSubmission(ctx, submission.Category, submission.SubmissionID)
	if err != nil || current.Status.Terminal() || current.ReminderSent {
		return false
	}

	thread, err := j.Gateway.LookupThread(ctx, current.ThreadRef)
	if err != nil {
		// Transient: the row stays unflagged and is retried next tick.
		logger.Warn("reminder thread lookup failed",
			"event", "submission_reminder_thread_lookup_failed",
			"module", "community-workflow/submission-service",
			"layer", "worker",
			"submission_id", current.SubmissionID,
			"error", err.Error(),
		)
		return false
	}

	if thread.Locked {
		// A locked thread was decided out-of-band; flag it so it never gets
		// selected again, without pinging anyone.
		if err := j.Repository.MarkReminderSent(ctx, current.Category, current.SubmissionID); err != nil {
			logger.Error("reminder flag update failed",
				"event", "submission_reminder_flag_failed",
				"module", "community-workflow/submission-service",
				"layer", "worker",
				"submission_id", current.SubmissionID,
				"error", err.Error(),
			)
		}
		return false
	}

	if route, ok := j.Settings.NotificationRoute(current.Category); ok {
		message := fmt.Sprintf("%s %q from %s is still waiting for a decision",
			current.Category, current.Title, current.DisplayName)
		if err := j.Gateway.Notify(ctx, route.ChannelRef, route.RoleRefs, message); err != nil {
			logger.Warn("reminder notify failed",
				"event", "submission_reminder_notify_failed",
				"module", "community-workflow/submission-service",
				"layer", "worker",
				"submission_id", current.SubmissionID,
				"error", err.Error(),
			)
			return false
		}
	}

	if err := j.Repository.MarkReminderSent(ctx, current.Category, current.SubmissionID); err != nil {
		logger.Error("reminder flag update failed",
			"event", "submission_reminder_flag_failed",
			"module", "community-workflow/submission-service",
			"layer", "worker",
			"submission_id", current.SubmissionID,
			"error", err.Error(),
		)
		return false
	}
	return true
}
