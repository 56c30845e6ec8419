// Package testutil carries shared fixtures and assertion helpers for the
// contract engine's tests.
package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing.
var (
	TestCustomerID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestMerchantID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestContractID = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestPaymentID  = uuid.MustParse("00000000-0000-0000-0000-000000000020")
)
