package messaging

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"warden/internal/shared/events"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err := bus.Subscribe(ctx, TopicOutbound, "test-group", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	sent := events.New("warden-test", "thread_opened", "thread", "thread-1", nil)
	if err := bus.Publish(ctx, TopicOutbound, sent); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != sent.EventID || got.EventType != "thread_opened" {
			t.Fatalf("unexpected envelope: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not receive the event")
	}
}

func TestPublishWithoutSubscribersSucceeds(t *testing.T) {
	bus := NewBus(nil)
	if err := bus.Publish(context.Background(), TopicOutbound, events.New("warden-test", "notify_sent", "channel", "chan-1", nil)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestRecorderKeepsNewestFirstWithinCapacity(t *testing.T) {
	recorder := NewRecorder(3)
	for _, id := range []string{"a", "b", "c", "d"} {
		event := events.New("warden-test", "role_granted", "user", id, nil)
		if err := recorder.Record(context.Background(), event); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	recent := recorder.Recent()
	if len(recent) != 3 {
		t.Fatalf("recent length = %d, want 3", len(recent))
	}
	if recent[0].EntityID != "d" || recent[2].EntityID != "b" {
		t.Fatalf("unexpected order: %s, %s, %s", recent[0].EntityID, recent[1].EntityID, recent[2].EntityID)
	}
}
