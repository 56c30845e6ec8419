package messaging_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/infrastructure/messaging"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/events"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/kafka"
)

var relayLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockOutboxRepo struct {
	fetchFunc func(ctx context.Context, batchSize int) ([]events.OutboxMessage, error)
	sentIDs   []uuid.UUID
}

func (m *mockOutboxRepo) FetchPending(ctx context.Context, batchSize int) ([]events.OutboxMessage, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, batchSize)
	}
	return nil, nil
}

func (m *mockOutboxRepo) MarkSent(_ context.Context, ids []uuid.UUID) error {
	m.sentIDs = append(m.sentIDs, ids...)
	return nil
}

type mockPublisher struct {
	publishFunc func(ctx context.Context, topic string, messages ...kafka.Message) error
	published   []kafka.Message
	topics      []string
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, messages ...kafka.Message) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, topic, messages...); err != nil {
			return err
		}
	}
	m.published = append(m.published, messages...)
	m.topics = append(m.topics, topic)
	return nil
}

func pendingMessage(aggregateID, eventType string) events.OutboxMessage {
	return events.OutboxMessage{
		ID:            uuid.New(),
		AggregateID:   aggregateID,
		AggregateType: "Contract",
		EventType:     eventType,
		Payload:       []byte(`{"contract_number":"MEQ-1-A"}`),
		Status:        events.OutboxStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestOutboxRelay_Drain(t *testing.T) {
	t.Run("publishes pending rows and marks them sent", func(t *testing.T) {
		msgs := []events.OutboxMessage{
			pendingMessage("contract-1", "contract.created"),
			pendingMessage("contract-1", "payment.processed"),
		}
		repo := &mockOutboxRepo{
			fetchFunc: func(ctx context.Context, batchSize int) ([]events.OutboxMessage, error) {
				assert.Equal(t, 100, batchSize)
				return msgs, nil
			},
		}
		pub := &mockPublisher{}

		relay := messaging.NewOutboxRelay(repo, pub, "contract-events", 100, time.Second, relayLogger)

		require.NoError(t, relay.Drain(context.Background()))

		require.Len(t, pub.published, 2)
		assert.Equal(t, "contract-events", pub.topics[0])
		assert.Equal(t, []byte("contract-1"), pub.published[0].Key)
		assert.Equal(t, "contract.created", pub.published[0].Headers["event_type"])
		assert.Equal(t, msgs[0].ID.String(), pub.published[0].Headers["message_id"])

		assert.ElementsMatch(t, []uuid.UUID{msgs[0].ID, msgs[1].ID}, repo.sentIDs)
	})

	t.Run("refused rows stay pending and publish on the next drain", func(t *testing.T) {
		good := pendingMessage("contract-1", "contract.created")
		flaky := pendingMessage("contract-2", "contract.created")
		pending := []events.OutboxMessage{good, flaky}
		repo := &mockOutboxRepo{
			fetchFunc: func(ctx context.Context, batchSize int) ([]events.OutboxMessage, error) {
				return pending, nil
			},
		}
		brokerUp := false
		pub := &mockPublisher{
			publishFunc: func(ctx context.Context, topic string, messages ...kafka.Message) error {
				if !brokerUp && string(messages[0].Key) == "contract-2" {
					return errors.New("broker unavailable")
				}
				return nil
			},
		}

		relay := messaging.NewOutboxRelay(repo, pub, "contract-events", 10, time.Second, relayLogger)

		require.NoError(t, relay.Drain(context.Background()))
		assert.Equal(t, []uuid.UUID{good.ID}, repo.sentIDs)

		// The refused row was never marked, so the next sweep still sees it.
		pending = []events.OutboxMessage{flaky}
		brokerUp = true
		require.NoError(t, relay.Drain(context.Background()))
		assert.Equal(t, []uuid.UUID{good.ID, flaky.ID}, repo.sentIDs)
	})

	t.Run("no-op when nothing is pending", func(t *testing.T) {
		repo := &mockOutboxRepo{}
		pub := &mockPublisher{}

		relay := messaging.NewOutboxRelay(repo, pub, "contract-events", 10, time.Second, relayLogger)

		require.NoError(t, relay.Drain(context.Background()))
		assert.Empty(t, pub.published)
		assert.Empty(t, repo.sentIDs)
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &mockOutboxRepo{
			fetchFunc: func(context.Context, int) ([]events.OutboxMessage, error) {
				return nil, boom
			},
		}

		relay := messaging.NewOutboxRelay(repo, &mockPublisher{}, "contract-events", 10, time.Second, relayLogger)
		assert.ErrorIs(t, relay.Drain(context.Background()), boom)
	})
}

func TestOutboxRelay_RunStopsOnCancel(t *testing.T) {
	repo := &mockOutboxRepo{}
	relay := messaging.NewOutboxRelay(repo, &mockPublisher{}, "contract-events", 10, 5*time.Millisecond, relayLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := relay.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
