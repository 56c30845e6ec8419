package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Shared mocks for use case tests
// ---------------------------------------------------------------------------

type mockContractRepository struct {
	createFunc       func(ctx context.Context, contract model.Contract, audit model.AuditRecord) error
	findByIDFunc     func(ctx context.Context, id string) (model.Contract, error)
	findByNumberFunc func(ctx context.Context, contractNumber string) (model.Contract, error)
	created          []model.Contract
	createdAudits    []model.AuditRecord
}

func (m *mockContractRepository) Create(ctx context.Context, contract model.Contract, audit model.AuditRecord) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, contract, audit); err != nil {
			return err
		}
	}
	m.created = append(m.created, contract)
	m.createdAudits = append(m.createdAudits, audit)
	return nil
}

func (m *mockContractRepository) FindByID(ctx context.Context, id string) (model.Contract, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Contract{}, model.ErrContractNotFound
}

func (m *mockContractRepository) FindByNumber(ctx context.Context, contractNumber string) (model.Contract, error) {
	if m.findByNumberFunc != nil {
		return m.findByNumberFunc(ctx, contractNumber)
	}
	return model.Contract{}, model.ErrContractNotFound
}

type mockPaymentRepository struct {
	recordFunc               func(ctx context.Context, payment model.Payment, contract model.Contract, audit model.AuditRecord) error
	findByIDFunc             func(ctx context.Context, id string) (model.Payment, error)
	findByIdempotencyKeyFunc func(ctx context.Context, key string) (model.Payment, bool, error)
	recorded                 []model.Payment
	recordedContracts        []model.Contract
	recordedAudits           []model.AuditRecord
}

func (m *mockPaymentRepository) Record(ctx context.Context, payment model.Payment, contract model.Contract, audit model.AuditRecord) error {
	if m.recordFunc != nil {
		if err := m.recordFunc(ctx, payment, contract, audit); err != nil {
			return err
		}
	}
	m.recorded = append(m.recorded, payment)
	m.recordedContracts = append(m.recordedContracts, contract)
	m.recordedAudits = append(m.recordedAudits, audit)
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id string) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Payment{}, model.ErrPaymentNotFound
}

func (m *mockPaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (model.Payment, bool, error) {
	if m.findByIdempotencyKeyFunc != nil {
		return m.findByIdempotencyKeyFunc(ctx, key)
	}
	return model.Payment{}, false, nil
}

type mockEligibility struct {
	validateFunc func(ctx context.Context, merchantID string, product valueobject.Product, amount decimal.Decimal) error
}

func (m *mockEligibility) Validate(ctx context.Context, merchantID string, product valueobject.Product, amount decimal.Decimal) error {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, merchantID, product, amount)
	}
	return nil
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

type sequenceRefGen struct {
	contractNumbers []string
	paymentRefs     []string
	contractIdx     int
	paymentIdx      int
}

func (g *sequenceRefGen) ContractNumber() string {
	n := g.contractNumbers[g.contractIdx%len(g.contractNumbers)]
	g.contractIdx++
	return n
}

func (g *sequenceRefGen) PaymentReference() string {
	n := g.paymentRefs[g.paymentIdx%len(g.paymentRefs)]
	g.paymentIdx++
	return n
}
