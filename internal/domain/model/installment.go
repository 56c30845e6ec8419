package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// Installment is one scheduled partial payment within a contract. It is held
// inside the Contract aggregate; the aggregate owns all mutations.
type Installment struct {
	ID              string
	ContractID      string
	Number          int
	Status          valueobject.InstallmentStatus
	ScheduledAmount decimal.Decimal
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	FeeAmount       decimal.Decimal
	PaidAmount      decimal.Decimal
	DueDate         time.Time
	PaidAt          *time.Time
	PaymentID       string
}

// Remaining returns the unpaid portion of the scheduled amount.
func (i Installment) Remaining() decimal.Decimal {
	return i.ScheduledAmount.Sub(i.PaidAmount)
}
