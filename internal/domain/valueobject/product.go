package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Product – immutable value object
// ---------------------------------------------------------------------------

// Product identifies one of the BNPL financing products.
type Product struct {
	value string
}

const (
	productPayIn4    = "PAY_IN_4"
	productPayIn30   = "PAY_IN_30"
	productPayInFull = "PAY_IN_FULL"
	productFinancing = "FINANCING"
)

var (
	ProductPayIn4    = Product{value: productPayIn4}
	ProductPayIn30   = Product{value: productPayIn30}
	ProductPayInFull = Product{value: productPayInFull}
	ProductFinancing = Product{value: productFinancing}
)

var validProducts = map[string]Product{
	productPayIn4:    ProductPayIn4,
	productPayIn30:   ProductPayIn30,
	productPayInFull: ProductPayInFull,
	productFinancing: ProductFinancing,
}

// ErrInvalidProduct is returned for product codes the engine does not offer.
var ErrInvalidProduct = errors.New("invalid product")

// NewProduct creates a Product from a raw string.
func NewProduct(s string) (Product, error) {
	v, ok := validProducts[s]
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrInvalidProduct, s)
	}
	return v, nil
}

// String returns the string representation of the product.
func (p Product) String() string { return p.value }

// IsZero returns true if the product has not been initialised.
func (p Product) IsZero() bool { return p.value == "" }

// Equal returns true when both products carry the same value.
func (p Product) Equal(other Product) bool { return p.value == other.value }

// ---------------------------------------------------------------------------
// PaymentFrequency – immutable value object
// ---------------------------------------------------------------------------

// PaymentFrequency is the cadence of a contract's installment schedule.
type PaymentFrequency struct {
	value string
}

const (
	frequencyBiweekly  = "BIWEEKLY"
	frequencyMonthly   = "MONTHLY"
	frequencyImmediate = "IMMEDIATE"
)

var (
	FrequencyBiweekly  = PaymentFrequency{value: frequencyBiweekly}
	FrequencyMonthly   = PaymentFrequency{value: frequencyMonthly}
	FrequencyImmediate = PaymentFrequency{value: frequencyImmediate}
)

var validFrequencies = map[string]PaymentFrequency{
	frequencyBiweekly:  FrequencyBiweekly,
	frequencyMonthly:   FrequencyMonthly,
	frequencyImmediate: FrequencyImmediate,
}

// NewPaymentFrequency creates a PaymentFrequency from a raw string.
func NewPaymentFrequency(s string) (PaymentFrequency, error) {
	v, ok := validFrequencies[s]
	if !ok {
		return PaymentFrequency{}, fmt.Errorf("invalid payment frequency: %q", s)
	}
	return v, nil
}

// String returns the string representation of the frequency.
func (f PaymentFrequency) String() string { return f.value }

// IsZero returns true if the frequency has not been initialised.
func (f PaymentFrequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies carry the same value.
func (f PaymentFrequency) Equal(other PaymentFrequency) bool { return f.value == other.value }
