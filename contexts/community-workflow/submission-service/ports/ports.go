package ports

import (
	"context"
	"time"

	"warden/contexts/community-workflow/submission-service/domain/entities"
)

// Repository persists submissions in one table per category; every lookup is
// keyed by (category, id).
type Repository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, category entities.Category, submissionID string) (entities.Submission, error)
	UpdateSubmission(ctx context.Context, submission entities.Submission) error
	ListBySubmitter(ctx context.Context, submitterID string) (map[entities.Category][]entities.Submission, error)
	CountBySubmitter(ctx context.Context, submitterID string) (map[entities.Category]int, error)
	// ListStale returns non-terminal submissions with the reminder flag unset
	// created before the cutoff, across all categories.
	ListStale(ctx context.Context, cutoff time.Time) ([]entities.Submission, error)
	MarkReminderSent(ctx context.Context, category entities.Category, submissionID string) error

	AppendAudit(ctx context.Context, audit entities.DecisionAudit) error

	// SetPositionOpen upserts a recruitment position; unknown positions read
	// back as open.
	SetPositionOpen(ctx context.Context, position entities.ApplicationRole, open bool) error
	IsPositionOpen(ctx context.Context, position entities.ApplicationRole) (bool, error)
	ListPositions(ctx context.Context) ([]entities.RecruitmentPosition, error)
}

// ThreadState is what the reminder job needs to know about a hosting thread.
type ThreadState struct {
	ThreadRef string
	Locked    bool
}

// Gateway reaches the chat platform. Calls after the status commit are
// single-attempt and best-effort.
type Gateway interface {
	// OpenThread creates the hosting thread and returns its ref.
	OpenThread(ctx context.Context, title string, fields []entities.Field) (string, error)
	LookupThread(ctx context.Context, threadRef string) (ThreadState, error)
	// RenderOutcome posts the decision summary into the thread.
	RenderOutcome(ctx context.Context, threadRef, label string, tone entities.DecisionTone, reviewerID, reason string) error
	// AttachControls replaces the thread's action controls with the given set.
	AttachControls(ctx context.Context, threadRef string, actions []entities.Action) error
	// ArchiveThread renames, locks and archives a decided thread.
	ArchiveThread(ctx context.Context, threadRef, name string) error
	GrantRole(ctx context.Context, userID, roleRef string) error
	DirectMessage(ctx context.Context, userID, message string) error
	Notify(ctx context.Context, channelRef, roleRefs, message string) error
	PublishPanel(ctx context.Context, channelRef, panel string) error
}

// Ledger is the reputation collaborator, add-mode only.
type Ledger interface {
	Adjust(ctx context.Context, userID string, delta int) (int, error)
}

// Balances reads reputation for activity summaries.
type Balances interface {
	Balance(ctx context.Context, userID string) (int, error)
}

// Route is where a category's notifications land.
type Route struct {
	ChannelRef string
	RoleRefs   string
}

type Settings interface {
	RemindersEnabled() bool
	ReminderAfterDays() int
	NotificationRoute(category entities.Category) (Route, bool)
	LogChannel() string
}

type Locker interface {
	Lock(key string) func()
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
