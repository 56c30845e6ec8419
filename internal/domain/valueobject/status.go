package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ContractStatus – immutable value object
// ---------------------------------------------------------------------------

// ContractStatus represents the lifecycle stage of a contract.
type ContractStatus struct {
	value string
}

const (
	contractStatusActive    = "ACTIVE"
	contractStatusCompleted = "COMPLETED"
	contractStatusDefaulted = "DEFAULTED"
	contractStatusCancelled = "CANCELLED"
	contractStatusSuspended = "SUSPENDED"
)

var (
	ContractStatusActive    = ContractStatus{value: contractStatusActive}
	ContractStatusCompleted = ContractStatus{value: contractStatusCompleted}
	ContractStatusDefaulted = ContractStatus{value: contractStatusDefaulted}
	ContractStatusCancelled = ContractStatus{value: contractStatusCancelled}
	ContractStatusSuspended = ContractStatus{value: contractStatusSuspended}
)

var validContractStatuses = map[string]ContractStatus{
	contractStatusActive:    ContractStatusActive,
	contractStatusCompleted: ContractStatusCompleted,
	contractStatusDefaulted: ContractStatusDefaulted,
	contractStatusCancelled: ContractStatusCancelled,
	contractStatusSuspended: ContractStatusSuspended,
}

// NewContractStatus creates a ContractStatus from a raw string.
func NewContractStatus(s string) (ContractStatus, error) {
	v, ok := validContractStatuses[s]
	if !ok {
		return ContractStatus{}, fmt.Errorf("invalid contract status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ContractStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ContractStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ContractStatus) Equal(other ContractStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further ledger mutations are allowed.
func (s ContractStatus) IsTerminal() bool {
	return s.value == contractStatusCompleted || s.value == contractStatusCancelled
}

// ---------------------------------------------------------------------------
// InstallmentStatus – immutable value object
// ---------------------------------------------------------------------------

// InstallmentStatus represents the state of a single scheduled installment.
type InstallmentStatus struct {
	value string
}

const (
	installmentStatusPending       = "PENDING"
	installmentStatusDue           = "DUE"
	installmentStatusOverdue       = "OVERDUE"
	installmentStatusPartiallyPaid = "PARTIALLY_PAID"
	installmentStatusPaid          = "PAID"
	installmentStatusSkipped       = "SKIPPED"
	installmentStatusWrittenOff    = "WRITTEN_OFF"
)

var (
	InstallmentStatusPending       = InstallmentStatus{value: installmentStatusPending}
	InstallmentStatusDue           = InstallmentStatus{value: installmentStatusDue}
	InstallmentStatusOverdue       = InstallmentStatus{value: installmentStatusOverdue}
	InstallmentStatusPartiallyPaid = InstallmentStatus{value: installmentStatusPartiallyPaid}
	InstallmentStatusPaid          = InstallmentStatus{value: installmentStatusPaid}
	InstallmentStatusSkipped       = InstallmentStatus{value: installmentStatusSkipped}
	InstallmentStatusWrittenOff    = InstallmentStatus{value: installmentStatusWrittenOff}
)

var validInstallmentStatuses = map[string]InstallmentStatus{
	installmentStatusPending:       InstallmentStatusPending,
	installmentStatusDue:           InstallmentStatusDue,
	installmentStatusOverdue:       InstallmentStatusOverdue,
	installmentStatusPartiallyPaid: InstallmentStatusPartiallyPaid,
	installmentStatusPaid:          InstallmentStatusPaid,
	installmentStatusSkipped:       InstallmentStatusSkipped,
	installmentStatusWrittenOff:    InstallmentStatusWrittenOff,
}

// NewInstallmentStatus creates an InstallmentStatus from a raw string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	v, ok := validInstallmentStatuses[s]
	if !ok {
		return InstallmentStatus{}, fmt.Errorf("invalid installment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s InstallmentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s InstallmentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s InstallmentStatus) Equal(other InstallmentStatus) bool { return s.value == other.value }

// IsAllocatable reports whether a payment may be applied to the installment.
// Untouched future installments (PENDING) are not allocation targets; the
// due-date sweep promotes them first.
func (s InstallmentStatus) IsAllocatable() bool {
	switch s.value {
	case installmentStatusDue, installmentStatusOverdue, installmentStatusPartiallyPaid:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// PaymentStatus – immutable value object
// ---------------------------------------------------------------------------

// PaymentStatus represents the lifecycle stage of a payment.
type PaymentStatus struct {
	value string
}

const (
	paymentStatusPending    = "PENDING"
	paymentStatusProcessing = "PROCESSING"
	paymentStatusCompleted  = "COMPLETED"
	paymentStatusFailed     = "FAILED"
	paymentStatusCancelled  = "CANCELLED"
	paymentStatusRefunded   = "REFUNDED"
	paymentStatusChargeback = "CHARGEBACK"
)

var (
	PaymentStatusPending    = PaymentStatus{value: paymentStatusPending}
	PaymentStatusProcessing = PaymentStatus{value: paymentStatusProcessing}
	PaymentStatusCompleted  = PaymentStatus{value: paymentStatusCompleted}
	PaymentStatusFailed     = PaymentStatus{value: paymentStatusFailed}
	PaymentStatusCancelled  = PaymentStatus{value: paymentStatusCancelled}
	PaymentStatusRefunded   = PaymentStatus{value: paymentStatusRefunded}
	PaymentStatusChargeback = PaymentStatus{value: paymentStatusChargeback}
)

var validPaymentStatuses = map[string]PaymentStatus{
	paymentStatusPending:    PaymentStatusPending,
	paymentStatusProcessing: PaymentStatusProcessing,
	paymentStatusCompleted:  PaymentStatusCompleted,
	paymentStatusFailed:     PaymentStatusFailed,
	paymentStatusCancelled:  PaymentStatusCancelled,
	paymentStatusRefunded:   PaymentStatusRefunded,
	paymentStatusChargeback: PaymentStatusChargeback,
}

// NewPaymentStatus creates a PaymentStatus from a raw string.
func NewPaymentStatus(s string) (PaymentStatus, error) {
	v, ok := validPaymentStatuses[s]
	if !ok {
		return PaymentStatus{}, fmt.Errorf("invalid payment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s PaymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s PaymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s PaymentStatus) Equal(other PaymentStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
