package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// financingAPR is the fixed annual rate applied to the FINANCING product.
var financingAPR = decimal.RequireFromString("0.15")

// Terms is the pure output of the term calculator: everything the schedule
// generator needs to lay out a contract.
type Terms struct {
	Product           valueobject.Product
	PrincipalAmount   decimal.Decimal
	TotalAmount       decimal.Decimal
	APR               decimal.Decimal
	TermMonths        int
	Frequency         valueobject.PaymentFrequency
	InstallmentCount  int
	InstallmentAmount decimal.Decimal
}

// CalculateTerms derives the financing terms for a product and principal.
// Pure and deterministic; amount-bound eligibility is the caller's concern.
func CalculateTerms(product valueobject.Product, principal decimal.Decimal) (Terms, error) {
	if product.IsZero() {
		return Terms{}, valueobject.ErrInvalidProduct
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Terms{}, errors.New("principal must be positive")
	}

	t := Terms{
		Product:         product,
		PrincipalAmount: principal,
		APR:             decimal.Zero,
	}

	switch product {
	case valueobject.ProductPayIn4:
		t.TotalAmount = principal
		t.TermMonths = 2
		t.Frequency = valueobject.FrequencyBiweekly
		t.InstallmentCount = 4

	case valueobject.ProductPayIn30:
		t.TotalAmount = principal
		t.TermMonths = 1
		t.Frequency = valueobject.FrequencyMonthly
		t.InstallmentCount = 1

	case valueobject.ProductPayInFull:
		t.TotalAmount = principal
		t.TermMonths = 0
		t.Frequency = valueobject.FrequencyImmediate
		t.InstallmentCount = 1

	case valueobject.ProductFinancing:
		t.TotalAmount = principal.Mul(decimal.NewFromInt(1).Add(financingAPR)).Round(2)
		t.APR = financingAPR
		t.TermMonths = 12
		t.Frequency = valueobject.FrequencyMonthly
		t.InstallmentCount = 12

	default:
		return Terms{}, fmt.Errorf("%w: %q", valueobject.ErrInvalidProduct, product)
	}

	t.InstallmentAmount = ceilCents(t.TotalAmount.Div(decimal.NewFromInt(int64(t.InstallmentCount))))
	return t, nil
}

// ceilCents rounds up to the next cent so that all-but-last installments
// never undershoot; the final installment absorbs the remainder.
func ceilCents(d decimal.Decimal) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(100)).Ceil().Div(decimal.NewFromInt(100))
}
