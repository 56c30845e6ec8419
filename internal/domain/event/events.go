package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// Event type names. One event is emitted per ledger-mutating transaction.
const (
	TypeContractCreated  = "contract.created"
	TypePaymentProcessed = "payment.processed"
)

const aggregateContract = "Contract"

// ContractCreated is raised when a contract and its schedule are persisted.
type ContractCreated struct {
	events.BaseEvent
	ContractNumber   string          `json:"contract_number"`
	CustomerID       string          `json:"customer_id"`
	MerchantID       string          `json:"merchant_id"`
	Product          string          `json:"product"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	APR              decimal.Decimal `json:"apr"`
	TermMonths       int             `json:"term_months"`
	Frequency        string          `json:"payment_frequency"`
	InstallmentCount int             `json:"installment_count"`
	FirstPaymentDate time.Time       `json:"first_payment_date"`
	MaturityDate     time.Time       `json:"maturity_date"`
}

func NewContractCreated(
	contractID string, sequence int,
	contractNumber, customerID, merchantID, product string,
	principal, total, apr decimal.Decimal,
	termMonths int, frequency string, installmentCount int,
	firstPaymentDate, maturityDate time.Time,
	occurredAt time.Time,
) ContractCreated {
	return ContractCreated{
		BaseEvent:        events.NewBaseEvent(TypeContractCreated, contractID, aggregateContract, sequence, occurredAt),
		ContractNumber:   contractNumber,
		CustomerID:       customerID,
		MerchantID:       merchantID,
		Product:          product,
		PrincipalAmount:  principal,
		TotalAmount:      total,
		APR:              apr,
		TermMonths:       termMonths,
		Frequency:        frequency,
		InstallmentCount: installmentCount,
		FirstPaymentDate: firstPaymentDate,
		MaturityDate:     maturityDate,
	}
}

// PaymentProcessed is raised when a payment has been allocated against a
// contract's installments and the ledger balance updated. Contract completion
// rides on the same event rather than a second outbox row, keeping the
// one-row-per-transaction invariant.
type PaymentProcessed struct {
	events.BaseEvent
	PaymentID          string          `json:"payment_id"`
	PaymentReference   string          `json:"payment_reference"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	ContractStatus     string          `json:"contract_status"`
	InstallmentsPaid   int             `json:"installments_paid"`
}

func NewPaymentProcessed(
	contractID string, sequence int,
	paymentID, paymentReference string,
	amount decimal.Decimal, currency string,
	outstandingBalance decimal.Decimal,
	contractStatus string, installmentsPaid int,
	occurredAt time.Time,
) PaymentProcessed {
	return PaymentProcessed{
		BaseEvent:          events.NewBaseEvent(TypePaymentProcessed, contractID, aggregateContract, sequence, occurredAt),
		PaymentID:          paymentID,
		PaymentReference:   paymentReference,
		Amount:             amount,
		Currency:           currency,
		OutstandingBalance: outstandingBalance,
		ContractStatus:     contractStatus,
		InstallmentsPaid:   installmentsPaid,
	}
}
