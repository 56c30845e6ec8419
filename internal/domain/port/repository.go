package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ContractRepository persists and retrieves contracts with their schedules.
//
// Create writes the contract, its installments, one outbox row and the audit
// record in a single transaction; any failure rolls back the whole write. A
// contract-number collision surfaces as model.ErrDuplicateContractNumber.
type ContractRepository interface {
	Create(ctx context.Context, contract model.Contract, audit model.AuditRecord) error
	FindByID(ctx context.Context, id string) (model.Contract, error)
	FindByNumber(ctx context.Context, contractNumber string) (model.Contract, error)
}

// PaymentRepository persists payments and the ledger mutation they carry.
//
// Record writes the payment, the updated contract row (with optimistic
// version guard), the touched installments, one outbox row and the audit
// record in a single transaction. An idempotency-key collision surfaces as
// model.ErrDuplicateIdempotencyKey with nothing applied.
type PaymentRepository interface {
	Record(ctx context.Context, payment model.Payment, contract model.Contract, audit model.AuditRecord) error
	FindByID(ctx context.Context, id string) (model.Payment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (model.Payment, bool, error)
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// MerchantEligibility validates that a merchant may originate the given
// product and amount. The engine trusts the result.
type MerchantEligibility interface {
	Validate(ctx context.Context, merchantID string, product valueobject.Product, amount decimal.Decimal) error
}

// Clock supplies the current time; injected for deterministic tests.
type Clock interface {
	Now() time.Time
}

// ReferenceGenerator issues human-readable contract numbers and payment
// references. Uniqueness is enforced at the persistence boundary, not here.
type ReferenceGenerator interface {
	ContractNumber() string
	PaymentReference() string
}
