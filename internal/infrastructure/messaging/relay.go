package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/events"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/kafka"
)

// Publisher is the transport side of the relay; satisfied by kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// OutboxRelay drains PENDING outbox rows and publishes them to Kafka. At
// least-once delivery: rows are marked SENT only after the broker accepts
// the message, so consumers must dedupe on the deterministic message ID.
type OutboxRelay struct {
	outbox    events.OutboxRepository
	publisher Publisher
	topic     string
	batchSize int
	interval  time.Duration
	logger    *slog.Logger
}

// NewOutboxRelay wires dependencies.
func NewOutboxRelay(
	outbox events.OutboxRepository,
	publisher Publisher,
	topic string,
	batchSize int,
	interval time.Duration,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		topic:     topic,
		batchSize: batchSize,
		interval:  interval,
		logger:    logger,
	}
}

// Run polls until the context is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				r.logger.Error("outbox drain failed", "error", err)
			}
		}
	}
}

// Drain performs one fetch-publish-mark pass. A refused row stays PENDING
// and is picked up again on the next pass; it never blocks the rest of the
// batch.
func (r *OutboxRelay) Drain(ctx context.Context) error {
	messages, err := r.outbox.FetchPending(ctx, r.batchSize)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	var sent []uuid.UUID
	retried := 0
	for _, msg := range messages {
		err := r.publisher.Publish(ctx, r.topic, kafka.Message{
			// Keyed by aggregate so per-contract ordering survives partitioning.
			Key:   []byte(msg.AggregateID),
			Value: msg.Payload,
			Headers: map[string]string{
				"message_id":     msg.ID.String(),
				"event_type":     msg.EventType,
				"aggregate_type": msg.AggregateType,
			},
		})
		if err != nil {
			r.logger.Error("outbox publish failed",
				"message_id", msg.ID.String(),
				"event_type", msg.EventType,
				"error", err,
			)
			retried++
			continue
		}
		sent = append(sent, msg.ID)
	}

	if err := r.outbox.MarkSent(ctx, sent); err != nil {
		return err
	}

	r.logger.Info("outbox drained",
		"sent", len(sent),
		"retried", retried,
	)
	return nil
}
