package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimalEqual asserts two decimals are numerically equal, with a
// readable failure message.
func AssertDecimalEqual(t *testing.T, want, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

// Dec is shorthand for decimal.RequireFromString in test tables.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
