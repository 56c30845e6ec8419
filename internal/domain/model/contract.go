package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/event"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Contract aggregate root (Contract & Payment Ledger Engine)
// ---------------------------------------------------------------------------

// Contract is an immutable aggregate. Mutations return a new copy. The
// installment schedule lives inside the aggregate; all allocation and balance
// math goes through it so the ledger invariant
// outstandingBalance = totalAmount − Σ(completed payments) holds everywhere.
type Contract struct {
	id                 string
	contractNumber     string
	customerID         string
	merchantID         string
	product            valueobject.Product
	status             valueobject.ContractStatus
	principalAmount    decimal.Decimal
	totalAmount        decimal.Decimal
	outstandingBalance decimal.Decimal
	apr                decimal.Decimal
	termMonths         int
	frequency          valueobject.PaymentFrequency
	firstPaymentDate   time.Time
	maturityDate       time.Time
	installments       []Installment
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	activatedAt        time.Time
	completedAt        *time.Time
	domainEvents       []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewContract creates a financed contract: terms are calculated, the
// installment schedule generated, and the contract starts ACTIVE with the
// full total outstanding. Emits contract.created.
func NewContract(
	contractNumber, customerID, merchantID string,
	product valueobject.Product,
	principal decimal.Decimal,
	now time.Time,
) (Contract, error) {
	if contractNumber == "" {
		return Contract{}, errors.New("contract number is required")
	}
	if customerID == "" {
		return Contract{}, errors.New("customer ID is required")
	}
	if merchantID == "" {
		return Contract{}, errors.New("merchant ID is required")
	}

	terms, err := CalculateTerms(product, principal)
	if err != nil {
		return Contract{}, err
	}

	id := uuid.New().String()
	sched := GenerateSchedule(terms, now)
	for i := range sched {
		sched[i].ID = uuid.New().String()
		sched[i].ContractID = id
	}

	first := sched[0].DueDate
	maturity := sched[len(sched)-1].DueDate

	c := Contract{
		id:                 id,
		contractNumber:     contractNumber,
		customerID:         customerID,
		merchantID:         merchantID,
		product:            product,
		status:             valueobject.ContractStatusActive,
		principalAmount:    terms.PrincipalAmount,
		totalAmount:        terms.TotalAmount,
		outstandingBalance: terms.TotalAmount,
		apr:                terms.APR,
		termMonths:         terms.TermMonths,
		frequency:          terms.Frequency,
		firstPaymentDate:   first,
		maturityDate:       maturity,
		installments:       sched,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
		activatedAt:        now,
	}

	c.domainEvents = append(c.domainEvents, event.NewContractCreated(
		id, c.version,
		contractNumber, customerID, merchantID, product.String(),
		terms.PrincipalAmount, terms.TotalAmount, terms.APR,
		terms.TermMonths, terms.Frequency.String(), terms.InstallmentCount,
		first, maturity, now,
	))

	return c, nil
}

// ReconstructContract rebuilds a Contract aggregate from persistence.
func ReconstructContract(
	id, contractNumber, customerID, merchantID string,
	product valueobject.Product,
	status valueobject.ContractStatus,
	principal, total, outstanding, apr decimal.Decimal,
	termMonths int,
	frequency valueobject.PaymentFrequency,
	firstPaymentDate, maturityDate time.Time,
	installments []Installment,
	version int,
	createdAt, updatedAt, activatedAt time.Time,
	completedAt *time.Time,
) Contract {
	return Contract{
		id:                 id,
		contractNumber:     contractNumber,
		customerID:         customerID,
		merchantID:         merchantID,
		product:            product,
		status:             status,
		principalAmount:    principal,
		totalAmount:        total,
		outstandingBalance: outstanding,
		apr:                apr,
		termMonths:         termMonths,
		frequency:          frequency,
		firstPaymentDate:   firstPaymentDate,
		maturityDate:       maturityDate,
		installments:       installments,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		activatedAt:        activatedAt,
		completedAt:        completedAt,
	}
}

// ---------------------------------------------------------------------------
// Payment allocation & balance ledger
// ---------------------------------------------------------------------------

// ApplyPayment allocates a completed payment against the contract. Allocation
// is strictly FIFO by due date over DUE/OVERDUE/PARTIALLY_PAID installments;
// the outstanding balance is decremented by the full payment amount so the
// ledger stays consistent even on overpayment. Reaching zero (or below)
// completes the contract with the balance clamped at zero.
func (c Contract) ApplyPayment(p Payment, now time.Time) (Contract, error) {
	if !c.status.Equal(valueobject.ContractStatusActive) {
		return c, fmt.Errorf("%w: %s", ErrContractNotActive, c.status)
	}
	if p.Amount().LessThanOrEqual(decimal.Zero) {
		return c, errors.New("payment amount must be positive")
	}
	if p.ContractID() != c.id {
		return c, errors.New("payment targets a different contract")
	}

	next := c
	next.installments = make([]Installment, len(c.installments))
	copy(next.installments, c.installments)

	targets := make([]*Installment, 0, len(next.installments))
	for i := range next.installments {
		if next.installments[i].Status.IsAllocatable() {
			targets = append(targets, &next.installments[i])
		}
	}
	sort.SliceStable(targets, func(a, b int) bool {
		if targets[a].DueDate.Equal(targets[b].DueDate) {
			return targets[a].Number < targets[b].Number
		}
		return targets[a].DueDate.Before(targets[b].DueDate)
	})

	remaining := p.Amount()
	paidCount := 0
	for _, inst := range targets {
		if remaining.IsZero() {
			break
		}
		applied := decimal.Min(remaining, inst.Remaining())
		if applied.LessThanOrEqual(decimal.Zero) {
			continue
		}

		inst.PaidAmount = inst.PaidAmount.Add(applied)
		remaining = remaining.Sub(applied)

		if inst.PaidAmount.GreaterThanOrEqual(inst.ScheduledAmount) {
			inst.Status = valueobject.InstallmentStatusPaid
			paidAt := now
			inst.PaidAt = &paidAt
			inst.PaymentID = p.ID()
			paidCount++
		} else {
			inst.Status = valueobject.InstallmentStatusPartiallyPaid
		}
	}
	// Any leftover is an overpayment; it reduces the ledger below.

	next.outstandingBalance = c.outstandingBalance.Sub(p.Amount())
	if next.outstandingBalance.LessThanOrEqual(decimal.Zero) {
		next.outstandingBalance = decimal.Zero
		next.status = valueobject.ContractStatusCompleted
		completedAt := now
		next.completedAt = &completedAt
	}
	next.version = c.version + 1
	next.updatedAt = now

	next.domainEvents = copyEvents(c.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentProcessed(
		c.id, next.version,
		p.ID(), p.PaymentReference(),
		p.Amount(), p.Currency(),
		next.outstandingBalance, next.status.String(), paidCount, now,
	))

	return next, nil
}

// ---------------------------------------------------------------------------
// State transitions owned by out-of-band collaborators (sweeps, ops tooling)
// ---------------------------------------------------------------------------

// MarkDefaulted transitions ACTIVE/SUSPENDED -> DEFAULTED.
func (c Contract) MarkDefaulted(now time.Time) (Contract, error) {
	if !c.status.Equal(valueobject.ContractStatusActive) && !c.status.Equal(valueobject.ContractStatusSuspended) {
		return c, valueobject.ErrInvalidStatusTransition
	}
	next := c
	next.status = valueobject.ContractStatusDefaulted
	next.version = c.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// Cancel transitions ACTIVE -> CANCELLED. Only contracts with no money
// received may be cancelled.
func (c Contract) Cancel(now time.Time) (Contract, error) {
	if !c.status.Equal(valueobject.ContractStatusActive) {
		return c, valueobject.ErrInvalidStatusTransition
	}
	if !c.outstandingBalance.Equal(c.totalAmount) {
		return c, errors.New("cannot cancel a contract with received payments")
	}
	next := c
	next.status = valueobject.ContractStatusCancelled
	next.version = c.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// Suspend transitions ACTIVE -> SUSPENDED.
func (c Contract) Suspend(now time.Time) (Contract, error) {
	if !c.status.Equal(valueobject.ContractStatusActive) {
		return c, valueobject.ErrInvalidStatusTransition
	}
	next := c
	next.status = valueobject.ContractStatusSuspended
	next.version = c.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// Resume transitions SUSPENDED -> ACTIVE.
func (c Contract) Resume(now time.Time) (Contract, error) {
	if !c.status.Equal(valueobject.ContractStatusSuspended) {
		return c, valueobject.ErrInvalidStatusTransition
	}
	next := c
	next.status = valueobject.ContractStatusActive
	next.version = c.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(c.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Contract) ID() string                             { return c.id }
func (c Contract) ContractNumber() string                 { return c.contractNumber }
func (c Contract) CustomerID() string                     { return c.customerID }
func (c Contract) MerchantID() string                     { return c.merchantID }
func (c Contract) Product() valueobject.Product           { return c.product }
func (c Contract) Status() valueobject.ContractStatus     { return c.status }
func (c Contract) PrincipalAmount() decimal.Decimal       { return c.principalAmount }
func (c Contract) TotalAmount() decimal.Decimal           { return c.totalAmount }
func (c Contract) OutstandingBalance() decimal.Decimal    { return c.outstandingBalance }
func (c Contract) APR() decimal.Decimal                   { return c.apr }
func (c Contract) TermMonths() int                        { return c.termMonths }
func (c Contract) Frequency() valueobject.PaymentFrequency { return c.frequency }
func (c Contract) FirstPaymentDate() time.Time            { return c.firstPaymentDate }
func (c Contract) MaturityDate() time.Time                { return c.maturityDate }
func (c Contract) Version() int                           { return c.version }
func (c Contract) CreatedAt() time.Time                   { return c.createdAt }
func (c Contract) UpdatedAt() time.Time                   { return c.updatedAt }
func (c Contract) ActivatedAt() time.Time                 { return c.activatedAt }
func (c Contract) CompletedAt() *time.Time                { return c.completedAt }
func (c Contract) DomainEvents() []event.DomainEvent      { return c.domainEvents }

// Installments returns a defensive copy of the schedule.
func (c Contract) Installments() []Installment {
	if c.installments == nil {
		return nil
	}
	out := make([]Installment, len(c.installments))
	copy(out, c.installments)
	return out
}

// ClearEvents returns a copy with an empty event list.
func (c Contract) ClearEvents() Contract {
	next := c
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
