package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/money"
)

// Payment is an immutable aggregate recording money received against a
// contract. It transitions once, to COMPLETED or FAILED, then never changes.
type Payment struct {
	id             string
	reference      string
	contractID     string
	customerID     string
	merchantID     string
	amount         decimal.Decimal
	currency       money.Currency
	method         string
	idempotencyKey string
	status         valueobject.PaymentStatus
	failureReason  string
	initiatedAt    time.Time
	processedAt    *time.Time
	completedAt    *time.Time
}

// NewPayment creates a PENDING payment. The idempotency key may be empty, in
// which case retries of the same submission are not deduplicated.
func NewPayment(
	reference, contractID, customerID, merchantID string,
	amount decimal.Decimal,
	currency string,
	method, idempotencyKey string,
	now time.Time,
) (Payment, error) {
	if reference == "" {
		return Payment{}, errors.New("payment reference is required")
	}
	if contractID == "" {
		return Payment{}, errors.New("contract ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Payment{}, errors.New("payment amount must be positive")
	}
	cur, err := money.NewCurrency(currency)
	if err != nil {
		return Payment{}, err
	}
	if method == "" {
		return Payment{}, errors.New("payment method is required")
	}

	return Payment{
		id:             uuid.New().String(),
		reference:      reference,
		contractID:     contractID,
		customerID:     customerID,
		merchantID:     merchantID,
		amount:         amount,
		currency:       cur,
		method:         method,
		idempotencyKey: idempotencyKey,
		status:         valueobject.PaymentStatusPending,
		initiatedAt:    now,
	}, nil
}

// ReconstructPayment rebuilds a Payment from persistence.
func ReconstructPayment(
	id, reference, contractID, customerID, merchantID string,
	amount decimal.Decimal,
	currency money.Currency,
	method, idempotencyKey string,
	status valueobject.PaymentStatus,
	failureReason string,
	initiatedAt time.Time,
	processedAt, completedAt *time.Time,
) Payment {
	return Payment{
		id:             id,
		reference:      reference,
		contractID:     contractID,
		customerID:     customerID,
		merchantID:     merchantID,
		amount:         amount,
		currency:       currency,
		method:         method,
		idempotencyKey: idempotencyKey,
		status:         status,
		failureReason:  failureReason,
		initiatedAt:    initiatedAt,
		processedAt:    processedAt,
		completedAt:    completedAt,
	}
}

// Complete transitions PENDING -> COMPLETED.
func (p Payment) Complete(now time.Time) (Payment, error) {
	if !p.status.Equal(valueobject.PaymentStatusPending) {
		return p, valueobject.ErrInvalidStatusTransition
	}
	next := p
	next.status = valueobject.PaymentStatusCompleted
	processedAt, completedAt := now, now
	next.processedAt = &processedAt
	next.completedAt = &completedAt
	return next, nil
}

// Fail transitions PENDING -> FAILED with a reason.
func (p Payment) Fail(reason string, now time.Time) (Payment, error) {
	if !p.status.Equal(valueobject.PaymentStatusPending) {
		return p, valueobject.ErrInvalidStatusTransition
	}
	next := p
	next.status = valueobject.PaymentStatusFailed
	next.failureReason = reason
	processedAt := now
	next.processedAt = &processedAt
	return next, nil
}

func (p Payment) ID() string                           { return p.id }
func (p Payment) PaymentReference() string             { return p.reference }
func (p Payment) ContractID() string                   { return p.contractID }
func (p Payment) CustomerID() string                   { return p.customerID }
func (p Payment) MerchantID() string                   { return p.merchantID }
func (p Payment) Amount() decimal.Decimal              { return p.amount }
func (p Payment) Currency() string                     { return p.currency.Code() }
func (p Payment) Method() string                       { return p.method }
func (p Payment) IdempotencyKey() string               { return p.idempotencyKey }
func (p Payment) Status() valueobject.PaymentStatus    { return p.status }
func (p Payment) FailureReason() string                { return p.failureReason }
func (p Payment) InitiatedAt() time.Time               { return p.initiatedAt }
func (p Payment) ProcessedAt() *time.Time              { return p.processedAt }
func (p Payment) CompletedAt() *time.Time              { return p.completedAt }
