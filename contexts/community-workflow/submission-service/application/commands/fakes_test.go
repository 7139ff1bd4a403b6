package commands

import (
	"context"
	"errors"
	"sync"

	"warden/contexts/community-workflow/submission-service/domain/entities"
	"warden/contexts/community-workflow/submission-service/ports"
)

var errGatewayDown = errors.New("gateway down")

type fakeGateway struct {
	mu sync.Mutex

	failGrantRole  bool
	failRender     bool
	failArchive    bool
	failDM         bool
	failNotify     bool
	failOpenThread bool

	threadSeq   int
	grants      []string
	outcomes    []string
	archived    []string
	controls    map[string][]entities.Action
	dms         []string
	notices     []string
	panels      []string
	lockedRefs  map[string]bool
	lookupFails map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		controls:    make(map[string][]entities.Action),
		lockedRefs:  make(map[string]bool),
		lookupFails: make(map[string]bool),
	}
}

func (g *fakeGateway) OpenThread(_ context.Context, title string, _ []entities.Field) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failOpenThread {
		return "", errGatewayDown
	}
	g.threadSeq++
	return "thread-" + title, nil
}

func (g *fakeGateway) LookupThread(_ context.Context, threadRef string) (ports.ThreadState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lookupFails[threadRef] {
		return ports.ThreadState{}, errGatewayDown
	}
	return ports.ThreadState{ThreadRef: threadRef, Locked: g.lockedRefs[threadRef]}, nil
}

func (g *fakeGateway) RenderOutcome(_ context.Context, threadRef, label string, _ entities.DecisionTone, _, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failRender {
		return errGatewayDown
	}
	g.outcomes = append(g.outcomes, threadRef+"|"+label)
	return nil
}

func (g *fakeGateway) AttachControls(_ context.Context, threadRef string, actions []entities.Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controls[threadRef] = actions
	return nil
}

func (g *fakeGateway) ArchiveThread(_ context.Context, threadRef, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failArchive {
		return errGatewayDown
	}
	g.archived = append(g.archived, threadRef+"|"+name)
	g.lockedRefs[threadRef] = true
	return nil
}

func (g *fakeGateway) GrantRole(_ context.Context, userID, roleRef string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failGrantRole {
		return errGatewayDown
	}
	g.grants = append(g.grants, userID+":"+roleRef)
	return nil
}

func (g *fakeGateway) DirectMessage(_ context.Context, userID, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failDM {
		return errGatewayDown
	}
	g.dms = append(g.dms, userID+"|"+message)
	return nil
}

func (g *fakeGateway) Notify(_ context.Context, channelRef, roleRefs, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failNotify {
		return errGatewayDown
	}
	g.notices = append(g.notices, channelRef+"|"+roleRefs+"|"+message)
	return nil
}

func (g *fakeGateway) PublishPanel(_ context.Context, channelRef, panel string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.panels = append(g.panels, channelRef+"|"+panel)
	return nil
}

type fakeLedger struct {
	mu       sync.Mutex
	fail     bool
	balances map[string]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{balances: make(map[string]int)}
}

func (l *fakeLedger) Adjust(_ context.Context, userID string, delta int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return 0, errors.New("ledger down")
	}
	l.balances[userID] += delta
	return l.balances[userID], nil
}

func (l *fakeLedger) Balance(_ context.Context, userID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

type fakeSettings struct {
	remindersEnabled bool
	reminderDays     int
	routes           map[entities.Category]ports.Route
	logChannel       string
}

func newFakeSettings() fakeSettings {
	return fakeSettings{
		remindersEnabled: true,
		reminderDays:     3,
		routes: map[entities.Category]ports.Route{
			entities.CategorySuggestion:  {ChannelRef: "chan-suggestions", RoleRefs: "@suggestion-team"},
			entities.CategoryBugReport:   {ChannelRef: "chan-bugs", RoleRefs: "@bug-team"},
			entities.CategoryApplication: {ChannelRef: "chan-recruitment", RoleRefs: "@recruiters"},
		},
		logChannel: "chan-log",
	}
}

func (s fakeSettings) RemindersEnabled() bool  { return s.remindersEnabled }
func (s fakeSettings) ReminderAfterDays() int  { return s.reminderDays }
func (s fakeSettings) LogChannel() string      { return s.logChannel }
func (s fakeSettings) NotificationRoute(category entities.Category) (ports.Route, bool) {
	route, ok := s.routes[category]
	return route, ok
}
