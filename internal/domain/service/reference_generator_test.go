package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func TestReferenceGenerator_Format(t *testing.T) {
	g := NewReferenceGenerator(fixedClock)

	contractRe := regexp.MustCompile(`^MEQ-\d+-[0-9A-Z]{6}$`)
	paymentRe := regexp.MustCompile(`^PAY-\d+-[0-9A-Z]{6}$`)

	assert.Regexp(t, contractRe, g.ContractNumber())
	assert.Regexp(t, paymentRe, g.PaymentReference())
}

func TestReferenceGenerator_SuffixVaries(t *testing.T) {
	g := NewReferenceGenerator(fixedClock)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[g.ContractNumber()] = true
	}
	// Same timestamp every call, so uniqueness rides on the random suffix.
	assert.Greater(t, len(seen), 90)
}
