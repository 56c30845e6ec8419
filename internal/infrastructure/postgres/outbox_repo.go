package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/events"
)

// Compile-time interface check
var _ events.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo implements the outbox relay's persistence side.
type OutboxRepo struct {
	pool *pgxpool.Pool
}

func NewOutboxRepo(pool *pgxpool.Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

// FetchPending returns up to batchSize PENDING rows in creation order.
// Concurrent relay instances may fetch the same rows, so delivery is
// at-least-once; consumers dedupe on the deterministic message ID.
func (r *OutboxRepo) FetchPending(ctx context.Context, batchSize int) ([]events.OutboxMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, status, created_at, sent_at
		FROM outbox
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`, events.OutboxStatusPending, batchSize)
	if err != nil {
		return nil, fmt.Errorf("query pending outbox: %w", err)
	}
	defer rows.Close()

	var messages []events.OutboxMessage
	for rows.Next() {
		var msg events.OutboxMessage
		if err := rows.Scan(&msg.ID, &msg.AggregateID, &msg.AggregateType, &msg.EventType,
			&msg.Payload, &msg.Status, &msg.CreatedAt, &msg.SentAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkSent stamps the given rows SENT.
func (r *OutboxRepo) MarkSent(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE outbox SET status = $1, sent_at = NOW() WHERE id = ANY($2)
	`, events.OutboxStatusSent, ids)
	if err != nil {
		return fmt.Errorf("mark outbox sent: %w", err)
	}
	return nil
}
