package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"warden/contexts/community-workflow/submission-service/adapters/memory"
	"warden/contexts/community-workflow/submission-service/domain/entities"
	"warden/contexts/community-workflow/submission-service/ports"
	"warden/internal/shared/keylock"
)

type reminderGateway struct {
	locked      map[string]bool
	lookupFails map[string]bool
	notices     []string
	notifyErr   error
}

func newReminderGateway() *reminderGateway {
	return &reminderGateway{
		locked:      make(map[string]bool),
		lookupFails: make(map[string]bool),
	}
}

func (g *reminderGateway) OpenThread(context.Context, string, []entities.Field) (string, error) {
	return "", nil
}

func (g *reminderGateway) LookupThread(_ context.Context, threadRef string) (ports.ThreadState, error) {
	if g.lookupFails[threadRef] {
		return ports.ThreadState{}, errors.New("thread unavailable")
	}
	return ports.ThreadState{ThreadRef: threadRef, Locked: g.locked[threadRef]}, nil
}

func (g *reminderGateway) RenderOutcome(context.Context, string, string, entities.DecisionTone, string, string) error {
	return nil
}

func (g *reminderGateway) AttachControls(context.Context, string, []entities.Action) error {
	return nil
}

func (g *reminderGateway) ArchiveThread(context.Context, string, string) error { return nil }

func (g *reminderGateway) GrantRole(context.Context, string, string) error { return nil }

func (g *reminderGateway) DirectMessage(context.Context, string, string) error { return nil }

func (g *reminderGateway) Notify(_ context.Context, channelRef, roleRefs, message string) error {
	if g.notifyErr != nil {
		return g.notifyErr
	}
	g.notices = append(g.notices, channelRef+"|"+roleRefs+"|"+message)
	return nil
}

func (g *reminderGateway) PublishPanel(context.Context, string, string) error { return nil }

type reminderSettings struct {
	enabled bool
	days    int
}

func (s reminderSettings) RemindersEnabled() bool { return s.enabled }
func (s reminderSettings) ReminderAfterDays() int { return s.days }
func (s reminderSettings) LogChannel() string     { return "" }
func (s reminderSettings) NotificationRoute(entities.Category) (ports.Route, bool) {
	return ports.Route{ChannelRef: "chan-review", RoleRefs: "@reviewers"}, true
}

func seedSubmission(t *testing.T, store *memory.Store, id string, age time.Duration) entities.Submission {
	t.Helper()
	now := time.Now().UTC()
	submission := entities.Submission{
		SubmissionID: id,
		Category:     entities.CategorySuggestion,
		Scope:        entities.ScopeJB,
		SubmitterID:  "user-1",
		DisplayName:  "Alice",
		Title:        "Idea " + id,
		ThreadRef:    "thread-" + id,
		Status:       entities.StatusPending,
		CreatedAt:    now.Add(-age),
		UpdatedAt:    now.Add(-age),
	}
	if err := store.CreateSubmission(context.Background(), submission); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return submission
}

func newJob(store *memory.Store, gateway *reminderGateway, settings reminderSettings) ReminderJob {
	return ReminderJob{
		Repository: store,
		Gateway:    gateway,
		Settings:   settings,
		Locker:     keylock.New(),
		Clock:      store,
	}
}

func TestReminderDisabledIsNoOp(t *testing.T) {
	store := memory.NewStore()
	gateway := newReminderGateway()
	seedSubmission(t, store, "s1", 10*24*time.Hour)

	job := newJob(store, gateway, reminderSettings{enabled: false, days: 3})
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(gateway.notices) != 0 {
		t.Fatalf("disabled job sent notices: %v", gateway.notices)
	}
}

func TestReminderSelectsOnlyStaleUnflagged(t *testing.T) {
	store := memory.NewStore()
	gateway := newReminderGateway()
	stale := seedSubmission(t, store, "old", 5*24*time.Hour)
	fresh := seedSubmission(t, store, "new", 1*24*time.Hour)

	job := newJob(store, gateway, reminderSettings{enabled: true, days: 3})
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(gateway.notices) != 1 {
		t.Fatalf("expected one reminder, got %v", gateway.notices)
	}

	got, _ := store.GetSubmission(context.Background(), entities.CategorySuggestion, stale.SubmissionID)
	if !got.ReminderSent {
		t.Fatal("stale submission not flagged")
	}
	got, _ = store.GetSubmission(context.Background(), entities.CategorySuggestion, fresh.SubmissionID)
	if got.ReminderSent {
		t.Fatal("fresh submission flagged")
	}
}

func TestReminderFlagSetAtMostOnce(t *testing.T) {
	store := memory.NewStore()
	gateway := newReminderGateway()
	seedSubmission(t, store, "s1", 5*24*time.Hour)

	job := newJob(store, gateway, reminderSettings{enabled: true, days: 3})
	for i := 0; i < 3; i++ {
		if err := job.RunOnce(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(gateway.notices) != 1 {
		t.Fatalf("flagged submission reminded again: %v", gateway.notices)
	}
}

func TestReminderLookupFailureRetriesNextTick(t *testing.T) {
	store := memory.NewStore()
	gateway := newReminderGateway()
	submission := seedSubmission(t, store, "s1", 5*24*time.Hour)
	gateway.lookupFails[submission.ThreadRef] = true

	job := newJob(store, gateway, reminderSettings{enabled: true, days: 3})
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(gateway.notices) != 0 {
		t.Fatalf("unexpected notice: %v", gateway.notices)
	}
	got, _ := store.GetSubmission(context.Background(), entities.CategorySuggestion, submission.SubmissionID)
	if got.ReminderSent {
		t.Fatal("flag set despite lookup failure")
	}

	// Next tick the thread is reachable again.
	gateway.lookupFails[submission.ThreadRef] = false
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry run: %v", err)
	}
	if len(gateway.notices) != 1 {
		t.Fatalf("retry did not remind: %v", gateway.notices)
	}
}

func TestReminderLockedThreadFlagsWithoutNotifying(t *testing.T) {
	store := memory.NewStore()
	gateway := newReminderGateway()
	submission := seedSubmission(t, store, "s1", 5*24*time.Hour)
	gateway.locked[submission.ThreadRef] = true

	job := newJob(store, gateway, reminderSettings{enabled: true, days: 3})
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(gateway.notices) != 0 {
		t.Fatalf("locked thread pinged reviewers: %v", gateway.notices)
	}
	got, _ := store.GetSubmission(context.Background(), entities.CategorySuggestion, submission.SubmissionID)
	if !got.ReminderSent {
		t.Fatal("locked thread must be flagged so it is never re-selected")
	}
}

func TestReminderNotifyFailureLeavesFlagUnset(t *testing.T) {
	store := memory.NewStore()
	gateway := newReminderGateway()
	submission := seedSubmission(t, store, "s1", 5*24*time.Hour)
	gateway.notifyErr = errors.New("channel gone")

	job := newJob(store, gateway, reminderSettings{enabled: true, days: 3})
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, _ := store.GetSubmission(context.Background(), entities.CategorySuggestion, submission.SubmissionID)
	if got.ReminderSent {
		t.Fatal("flag set despite failed notify")
	}
}
