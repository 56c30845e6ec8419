package adapter

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/port"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// Compile-time interface check
var _ port.MerchantEligibility = (*StubMerchantEligibility)(nil)

// StubMerchantEligibility is a development/test adapter enforcing flat
// per-product amount caps. The production adapter calls the merchant service.
type StubMerchantEligibility struct {
	limits map[valueobject.Product]decimal.Decimal
}

// NewStubMerchantEligibility creates a stub with default per-product caps.
func NewStubMerchantEligibility() *StubMerchantEligibility {
	return &StubMerchantEligibility{
		limits: map[valueobject.Product]decimal.Decimal{
			valueobject.ProductPayIn4:    decimal.NewFromInt(30000),
			valueobject.ProductPayIn30:   decimal.NewFromInt(30000),
			valueobject.ProductPayInFull: decimal.NewFromInt(100000),
			valueobject.ProductFinancing: decimal.NewFromInt(500000),
		},
	}
}

// Validate approves any known merchant as long as the amount is within the
// product's cap.
func (a *StubMerchantEligibility) Validate(_ context.Context, merchantID string, product valueobject.Product, amount decimal.Decimal) error {
	if merchantID == "" {
		return fmt.Errorf("merchant ID is required")
	}
	limit, ok := a.limits[product]
	if !ok {
		return fmt.Errorf("product %s is not offered", product)
	}
	if amount.GreaterThan(limit) {
		return fmt.Errorf("amount %s exceeds %s limit %s", amount, product, limit)
	}
	return nil
}
