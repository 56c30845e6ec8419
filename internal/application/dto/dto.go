package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateContractRequest carries the data needed to originate a contract.
type CreateContractRequest struct {
	CustomerID      string          `json:"customer_id"`
	MerchantID      string          `json:"merchant_id"`
	Product         string          `json:"product"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	RequestedBy     string          `json:"requested_by"`
}

// ProcessPaymentRequest carries the data for a payment against a contract.
type ProcessPaymentRequest struct {
	ContractID     string          `json:"contract_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	PaymentMethod  string          `json:"payment_method"`
	IdempotencyKey string          `json:"idempotency_key"`
	RequestedBy    string          `json:"requested_by"`
}

// GetContractRequest identifies a contract to retrieve, by ID or by number.
type GetContractRequest struct {
	ContractID     string `json:"contract_id"`
	ContractNumber string `json:"contract_number"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentResponse represents a single installment in a contract schedule.
type InstallmentResponse struct {
	ID              string          `json:"id"`
	Number          int             `json:"number"`
	Status          string          `json:"status"`
	ScheduledAmount decimal.Decimal `json:"scheduled_amount"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	DueDate         time.Time       `json:"due_date"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	PaymentID       string          `json:"payment_id,omitempty"`
}

// ContractResponse is the external representation of a contract.
type ContractResponse struct {
	ID                 string                `json:"id"`
	ContractNumber     string                `json:"contract_number"`
	CustomerID         string                `json:"customer_id"`
	MerchantID         string                `json:"merchant_id"`
	Product            string                `json:"product"`
	Status             string                `json:"status"`
	PrincipalAmount    decimal.Decimal       `json:"principal_amount"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	OutstandingBalance decimal.Decimal       `json:"outstanding_balance"`
	APR                decimal.Decimal       `json:"apr"`
	TermMonths         int                   `json:"term_months"`
	PaymentFrequency   string                `json:"payment_frequency"`
	FirstPaymentDate   time.Time             `json:"first_payment_date"`
	MaturityDate       time.Time             `json:"maturity_date"`
	Installments       []InstallmentResponse `json:"installments,omitempty"`
	Version            int                   `json:"version"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	CompletedAt        *time.Time            `json:"completed_at,omitempty"`
}

// PaymentResponse is the external representation of a payment result.
// Replayed marks responses served from a previously recorded payment with the
// same idempotency key.
type PaymentResponse struct {
	PaymentID          string          `json:"payment_id"`
	PaymentReference   string          `json:"payment_reference"`
	ContractID         string          `json:"contract_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	ContractStatus     string          `json:"contract_status"`
	Replayed           bool            `json:"replayed"`
}
