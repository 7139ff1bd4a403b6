// Package events defines the envelope carried on the in-process event bus.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is the shared event shape published by platform adapters.
type Envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	SourceService string    `json:"source_service"`
	OccurredAt    time.Time `json:"occurred_at"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Payload       any       `json:"payload,omitempty"`
}

// New stamps identity and time on a fresh envelope.
func New(source, eventType, entityType, entityID string, payload any) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		SourceService: source,
		OccurredAt:    time.Now().UTC(),
		EntityType:    entityType,
		EntityID:      entityID,
		Payload:       payload,
	}
}
