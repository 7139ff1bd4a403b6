// Package gateway is the presentation adapter towards the chat platform.
// Current implementation is in-process and log-backed while runtime wiring is
// finalized for the real platform API; it mints thread refs and tracks locked
// threads so local flows and the reminder job behave coherently.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	shopports "warden/contexts/community-economy/shop-service/ports"
	pollports "warden/contexts/community-engagement/poll-service/ports"
	submissionentities "warden/contexts/community-workflow/submission-service/domain/entities"
	submissionports "warden/contexts/community-workflow/submission-service/ports"
	"warden/internal/platform/messaging"
	"warden/internal/shared/events"
)

// InProcess satisfies the gateway ports of the submission, shop and poll
// services. Every outward action is mirrored onto the event bus for the ops
// activity feed.
type InProcess struct {
	mu      sync.RWMutex
	locked  map[string]bool
	known   map[string]bool
	seq     atomic.Int64
	bus     *messaging.Bus
	logger  *slog.Logger
	service string
}

var (
	_ submissionports.Gateway = (*InProcess)(nil)
	_ shopports.Gateway       = (*InProcess)(nil)
	_ pollports.Gateway       = (*InProcess)(nil)
)

func NewInProcess(serviceName string, bus *messaging.Bus, logger *slog.Logger) *InProcess {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcess{
		locked:  make(map[string]bool),
		known:   make(map[string]bool),
		bus:     bus,
		logger:  logger,
		service: serviceName,
	}
}

func (g *InProcess) log(msg, event string, args ...any) {
	g.logger.Info(msg, append([]any{"event", event}, args...)...)
}

func (g *InProcess) OpenThread(ctx context.Context, title string, fields []submissionentities.Field) (string, error) {
	threadRef := fmt.Sprintf("thread-%d", g.seq.Add(1))
	g.mu.Lock()
	g.known[threadRef] = true
	g.mu.Unlock()

	g.log("thread opened", "gateway_thread_opened",
		"thread_ref", threadRef,
		"title", title,
		"field_count", len(fields),
	)
	g.publish(ctx, "thread_opened", "thread", threadRef, map[string]string{"title": title})
	return threadRef, nil
}

func (g *InProcess) LookupThread(_ context.Context, threadRef string) (submissionports.ThreadState, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.known[threadRef] {
		return submissionports.ThreadState{}, fmt.Errorf("thread %s: not found", threadRef)
	}
	return submissionports.ThreadState{ThreadRef: threadRef, Locked: g.locked[threadRef]}, nil
}

func (g *InProcess) RenderOutcome(ctx context.Context, threadRef, label string, tone submissionentities.DecisionTone, reviewerID, reason string) error {
	g.log("decision outcome rendered", "gateway_outcome_rendered",
		"thread_ref", threadRef,
		"label", label,
		"tone", tone,
		"reviewer_id", reviewerID,
		"reason", reason,
	)
	g.publish(ctx, "outcome_rendered", "thread", threadRef, map[string]string{
		"label":       label,
		"reviewer_id": reviewerID,
	})
	return nil
}

func (g *InProcess) AttachControls(_ context.Context, threadRef string, actions []submissionentities.Action) error {
	g.log("thread controls attached", "gateway_controls_attached",
		"thread_ref", threadRef,
		"actions", len(actions),
	)
	return nil
}

func (g *InProcess) ArchiveThread(ctx context.Context, threadRef, name string) error {
	g.mu.Lock()
	g.known[threadRef] = true
	g.locked[threadRef] = true
	g.mu.Unlock()

	g.log("thread archived", "gateway_thread_archived",
		"thread_ref", threadRef,
		"name", name,
	)
	g.publish(ctx, "thread_archived", "thread", threadRef, map[string]string{"name": name})
	return nil
}

func (g *InProcess) GrantRole(ctx context.Context, userID, roleRef string) error {
	g.log("role granted", "gateway_role_granted",
		"user_id", userID,
		"role_ref", roleRef,
	)
	g.publish(ctx, "role_granted", "user", userID, map[string]string{"role_ref": roleRef})
	return nil
}

func (g *InProcess) DirectMessage(ctx context.Context, userID, message string) error {
	g.log("direct message sent", "gateway_direct_message",
		"user_id", userID,
		"message", message,
	)
	g.publish(ctx, "direct_message_sent", "user", userID, nil)
	return nil
}

func (g *InProcess) Notify(ctx context.Context, channelRef, roleRefs, message string) error {
	g.log("channel notified", "gateway_channel_notified",
		"channel_ref", channelRef,
		"role_refs", roleRefs,
		"message", message,
	)
	g.publish(ctx, "channel_notified", "channel", channelRef, map[string]string{"role_refs": roleRefs})
	return nil
}

func (g *InProcess) PublishPanel(ctx context.Context, channelRef, panel string) error {
	g.log("panel published", "gateway_panel_published",
		"channel_ref", channelRef,
		"panel", panel,
	)
	g.publish(ctx, "panel_published", "channel", channelRef, nil)
	return nil
}

func (g *InProcess) PublishTally(ctx context.Context, anchorID, question string, options []string, counts []int, closed bool) error {
	g.log("poll tally published", "gateway_poll_tally_published",
		"anchor_id", anchorID,
		"question", question,
		"options", len(options),
		"counts", fmt.Sprint(counts),
		"closed", closed,
	)
	g.publish(ctx, "poll_tally_published", "poll", anchorID, map[string]any{"closed": closed})
	return nil
}

func (g *InProcess) AttachPollControls(_ context.Context, anchorID string, optionCount int) error {
	g.log("poll controls attached", "gateway_poll_controls_attached",
		"anchor_id", anchorID,
		"options", optionCount,
	)
	return nil
}

// RegisterThread marks an externally created thread ref as known, for flows
// that did not open the thread through this gateway.
func (g *InProcess) RegisterThread(threadRef string, locked bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.known[threadRef] = true
	g.locked[threadRef] = locked
}

func (g *InProcess) publish(ctx context.Context, eventType, entityType, entityID string, payload any) {
	if g.bus == nil {
		return
	}
	// Bus failures must never fail the gateway call.
	_ = g.bus.Publish(ctx, messaging.TopicOutbound, events.New(g.service, eventType, entityType, entityID, payload))
}
