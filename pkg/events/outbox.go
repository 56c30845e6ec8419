package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outbox message statuses. A row stays PENDING until the broker accepts it,
// so publish failures are retried on the next relay sweep.
const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
)

// OutboxMessage represents a domain event stored in the outbox table.
// Exactly one row is written per mutating transaction; a relay drains
// PENDING rows in creation order and marks them SENT.
type OutboxMessage struct {
	ID            uuid.UUID
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       []byte
	Status        string
	CreatedAt     time.Time
	SentAt        *time.Time
}

// NewOutboxMessage builds an OutboxMessage from a DomainEvent. The payload is
// the JSON form of the event itself.
func NewOutboxMessage(event DomainEvent) (OutboxMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("marshal outbox payload: %w", err)
	}
	return OutboxMessage{
		ID:            event.MessageID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       payload,
		Status:        OutboxStatusPending,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// OutboxRepository is the port for outbox persistence. The engine itself only
// writes rows (inside its mutating transactions); the relay owns the rest.
type OutboxRepository interface {
	FetchPending(ctx context.Context, batchSize int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, ids []uuid.UUID) error
}
