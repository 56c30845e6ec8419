package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// GenerateSchedule lays out the installment drafts for the given terms,
// starting from startDate. Deterministic for identical inputs: IDs and
// contract references are assigned later by the aggregate.
//
// Every installment carries ceil-to-cents(total/count), clamped to whatever
// of TotalAmount is still unscheduled, and the last absorbs the remainder so
// the schedule sums exactly to TotalAmount and no amount goes negative. The
// interest share of each installment is spread proportionally under the same
// clamp, with the final installment again absorbing rounding.
func GenerateSchedule(t Terms, startDate time.Time) []Installment {
	if t.InstallmentCount <= 0 {
		return nil
	}

	per := t.InstallmentAmount
	count := t.InstallmentCount
	totalInterest := t.TotalAmount.Sub(t.PrincipalAmount)

	// interestRatio = interest / total; zero for zero-APR products.
	var interestRatio decimal.Decimal
	if totalInterest.IsPositive() {
		interestRatio = totalInterest.Div(t.TotalAmount)
	}

	schedule := make([]Installment, 0, count)
	var (
		sumScheduled decimal.Decimal
		sumInterest  decimal.Decimal
	)

	for n := 1; n <= count; n++ {
		// Ceiling the per-installment amount can overshoot tiny totals, so
		// each draft takes at most what is still unscheduled.
		scheduled := decimal.Min(per, t.TotalAmount.Sub(sumScheduled))
		if n == count {
			scheduled = t.TotalAmount.Sub(sumScheduled)
		}

		interest := decimal.Min(scheduled.Mul(interestRatio).Round(2), totalInterest.Sub(sumInterest))
		if n == count {
			interest = totalInterest.Sub(sumInterest)
		}
		principal := scheduled.Sub(interest)

		inst := Installment{
			Number:          n,
			Status:          installmentStatusAt(t, n, startDate),
			ScheduledAmount: scheduled,
			PrincipalAmount: principal,
			InterestAmount:  interest,
			FeeAmount:       decimal.Zero,
			PaidAmount:      decimal.Zero,
			DueDate:         dueDate(t.Frequency, startDate, n),
		}
		schedule = append(schedule, inst)

		sumScheduled = sumScheduled.Add(scheduled)
		sumInterest = sumInterest.Add(interest)
	}

	return schedule
}

// dueDate computes the due date of installment n for the given frequency:
// biweekly every 14 days, monthly every calendar month, immediate at start.
func dueDate(freq valueobject.PaymentFrequency, start time.Time, n int) time.Time {
	switch freq {
	case valueobject.FrequencyBiweekly:
		return start.AddDate(0, 0, 14*n)
	case valueobject.FrequencyMonthly:
		return start.AddDate(0, n, 0)
	default: // immediate
		return start
	}
}

// installmentStatusAt marks installments already due at schedule time DUE so
// the allocator can target them; future ones stay PENDING for the sweep.
func installmentStatusAt(t Terms, n int, start time.Time) valueobject.InstallmentStatus {
	if due := dueDate(t.Frequency, start, n); !due.After(start) {
		return valueobject.InstallmentStatusDue
	}
	return valueobject.InstallmentStatusPending
}
