package model

import "errors"

// Discriminated error kinds surfaced by the ledger engine. Repositories and
// use cases wrap these with context; callers classify with errors.Is.
var (
	// ErrContractNotFound is returned when a contract ID resolves to nothing.
	ErrContractNotFound = errors.New("contract not found")

	// ErrPaymentNotFound is returned when a payment lookup resolves to nothing.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrContractNotActive is returned when a payment targets a contract that
	// is not in ACTIVE status.
	ErrContractNotActive = errors.New("contract is not active")

	// ErrDuplicateContractNumber signals a unique-constraint collision on the
	// generated contract number; creation retries with a fresh number.
	ErrDuplicateContractNumber = errors.New("duplicate contract number")

	// ErrGenerationExhausted is returned when contract-number generation keeps
	// colliding past the bounded retry count.
	ErrGenerationExhausted = errors.New("contract number generation exhausted")

	// ErrDuplicateIdempotencyKey signals that a payment with the same
	// idempotency key already exists; the caller returns the original result.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrVersionConflict signals a concurrent mutation of the same contract;
	// money-moving operations are never retried automatically.
	ErrVersionConflict = errors.New("contract version conflict")
)
