package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Audit event types recorded by this engine.
const (
	AuditContractCreated  = "CONTRACT_CREATED"
	AuditPaymentProcessed = "PAYMENT_PROCESSED"
)

// AuditRecord is one immutable compliance record. Appended in the same
// transaction as the mutation it describes; never updated or deleted.
type AuditRecord struct {
	ID         string
	EventType  string
	EntityType string
	EntityID   string
	UserID     string
	EventData  []byte
	CreatedAt  time.Time
}

// NewAuditRecord builds an audit record; data is JSON-marshalled into EventData.
func NewAuditRecord(eventType, entityType, entityID, userID string, data any, now time.Time) (AuditRecord, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return AuditRecord{}, fmt.Errorf("marshal audit data: %w", err)
	}
	return AuditRecord{
		ID:         uuid.New().String(),
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		EventData:  payload,
		CreatedAt:  now,
	}, nil
}
