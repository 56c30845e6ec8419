package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/testutil"
)

var scheduleStart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func mustTerms(t *testing.T, product valueobject.Product, principal string) model.Terms {
	t.Helper()
	terms, err := model.CalculateTerms(product, testutil.Dec(principal))
	require.NoError(t, err)
	return terms
}

func scheduleSum(sched []model.Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range sched {
		sum = sum.Add(inst.ScheduledAmount)
	}
	return sum
}

func TestGenerateSchedule_PayIn4EvenSplit(t *testing.T) {
	terms := mustTerms(t, valueobject.ProductPayIn4, "1000")
	sched := model.GenerateSchedule(terms, scheduleStart)

	require.Len(t, sched, 4)
	for i, inst := range sched {
		assert.Equal(t, i+1, inst.Number)
		testutil.AssertDecimalEqual(t, testutil.Dec("250"), inst.ScheduledAmount)
		testutil.AssertDecimalEqual(t, testutil.Dec("250"), inst.PrincipalAmount)
		testutil.AssertDecimalEqual(t, decimal.Zero, inst.InterestAmount)
		assert.Equal(t, valueobject.InstallmentStatusPending, inst.Status)
		assert.Equal(t, scheduleStart.AddDate(0, 0, 14*(i+1)), inst.DueDate)
	}
	testutil.AssertDecimalEqual(t, terms.TotalAmount, scheduleSum(sched))
}

func TestGenerateSchedule_LastInstallmentAbsorbsRemainder(t *testing.T) {
	// 100.01 / 4 = 25.0025 -> 25.01 per installment; last takes 24.98.
	terms := mustTerms(t, valueobject.ProductPayIn4, "100.01")
	sched := model.GenerateSchedule(terms, scheduleStart)

	require.Len(t, sched, 4)
	for _, inst := range sched[:3] {
		testutil.AssertDecimalEqual(t, testutil.Dec("25.01"), inst.ScheduledAmount)
	}
	testutil.AssertDecimalEqual(t, testutil.Dec("24.98"), sched[3].ScheduledAmount)
	testutil.AssertDecimalEqual(t, terms.TotalAmount, scheduleSum(sched))
}

func TestGenerateSchedule_FinancingInterestSpread(t *testing.T) {
	terms := mustTerms(t, valueobject.ProductFinancing, "1000")
	sched := model.GenerateSchedule(terms, scheduleStart)

	require.Len(t, sched, 12)

	var sumInterest, sumPrincipal decimal.Decimal
	for _, inst := range sched {
		testutil.AssertDecimalEqual(t, inst.ScheduledAmount, inst.PrincipalAmount.Add(inst.InterestAmount))
		sumInterest = sumInterest.Add(inst.InterestAmount)
		sumPrincipal = sumPrincipal.Add(inst.PrincipalAmount)
	}
	testutil.AssertDecimalEqual(t, testutil.Dec("150"), sumInterest)
	testutil.AssertDecimalEqual(t, testutil.Dec("1000"), sumPrincipal)
	testutil.AssertDecimalEqual(t, testutil.Dec("1150"), scheduleSum(sched))

	// Monthly cadence, twelve calendar months out to maturity.
	assert.Equal(t, scheduleStart.AddDate(0, 1, 0), sched[0].DueDate)
	assert.Equal(t, scheduleStart.AddDate(0, 12, 0), sched[11].DueDate)
}

func TestGenerateSchedule_TinyPrincipalNeverGoesNegative(t *testing.T) {
	// 0.44 at 15% totals 0.51 over twelve installments; the 0.05 ceiling
	// overshoots, so later drafts clamp to what is left and trail off at zero.
	terms := mustTerms(t, valueobject.ProductFinancing, "0.44")
	testutil.AssertDecimalEqual(t, testutil.Dec("0.51"), terms.TotalAmount)
	testutil.AssertDecimalEqual(t, testutil.Dec("0.05"), terms.InstallmentAmount)

	sched := model.GenerateSchedule(terms, scheduleStart)
	require.Len(t, sched, 12)

	for _, inst := range sched {
		assert.False(t, inst.ScheduledAmount.IsNegative(), "installment %d scheduled %s", inst.Number, inst.ScheduledAmount)
		assert.False(t, inst.PrincipalAmount.IsNegative(), "installment %d principal %s", inst.Number, inst.PrincipalAmount)
		assert.False(t, inst.InterestAmount.IsNegative(), "installment %d interest %s", inst.Number, inst.InterestAmount)
		testutil.AssertDecimalEqual(t, inst.ScheduledAmount, inst.PrincipalAmount.Add(inst.InterestAmount))
	}
	testutil.AssertDecimalEqual(t, terms.TotalAmount, scheduleSum(sched))
}

func TestGenerateSchedule_PayInFullDueImmediately(t *testing.T) {
	terms := mustTerms(t, valueobject.ProductPayInFull, "79.99")
	sched := model.GenerateSchedule(terms, scheduleStart)

	require.Len(t, sched, 1)
	assert.Equal(t, scheduleStart, sched[0].DueDate)
	assert.Equal(t, valueobject.InstallmentStatusDue, sched[0].Status)
	testutil.AssertDecimalEqual(t, testutil.Dec("79.99"), sched[0].ScheduledAmount)
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	terms := mustTerms(t, valueobject.ProductFinancing, "333.33")

	first := model.GenerateSchedule(terms, scheduleStart)
	second := model.GenerateSchedule(terms, scheduleStart)

	require.Len(t, second, len(first))
	for i := range first {
		testutil.AssertDecimalEqual(t, first[i].ScheduledAmount, second[i].ScheduledAmount)
		testutil.AssertDecimalEqual(t, first[i].InterestAmount, second[i].InterestAmount)
		assert.Equal(t, first[i].DueDate, second[i].DueDate)
		assert.Equal(t, first[i].Status, second[i].Status)
	}
}
