// Package events holds the domain-event and transactional-outbox primitives
// shared by the Meqenet contract engine.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// messageNamespace seeds deterministic outbox message IDs. Replaying the same
// aggregate mutation always yields the same message ID, so downstream
// consumers can deduplicate on it.
var messageNamespace = uuid.MustParse("8f7a1e2b-6c3d-4e5f-9a0b-1c2d3e4f5a6b")

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	MessageID() uuid.UUID
	EventType() string
	AggregateID() string
	AggregateType() string
	Sequence() int
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent.
type BaseEvent struct {
	id            uuid.UUID
	eventType     string
	aggregateID   string
	aggregateType string
	sequence      int
	occurredAt    time.Time
}

// NewBaseEvent creates a BaseEvent whose message ID is derived
// deterministically from the aggregate type, aggregate ID and mutation
// sequence number.
func NewBaseEvent(eventType, aggregateID, aggregateType string, sequence int, occurredAt time.Time) BaseEvent {
	name := fmt.Sprintf("%s:%s:%d", aggregateType, aggregateID, sequence)
	return BaseEvent{
		id:            uuid.NewSHA1(messageNamespace, []byte(name)),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		sequence:      sequence,
		occurredAt:    occurredAt.UTC(),
	}
}

// MessageID returns the deterministic identifier for this event.
func (e BaseEvent) MessageID() uuid.UUID { return e.id }

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID returns the identifier of the aggregate that produced this event.
func (e BaseEvent) AggregateID() string { return e.aggregateID }

// AggregateType returns the type name of the aggregate that produced this event.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// Sequence returns the aggregate mutation sequence that produced this event.
func (e BaseEvent) Sequence() int { return e.sequence }

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
