package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/dto"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/usecase"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/testutil"
)

// activeContract reconstructs an ACTIVE contract with three DUE installments
// of 100 each.
func activeContract() model.Contract {
	id := testutil.TestContractID.String()
	installments := make([]model.Installment, 0, 3)
	for i := 0; i < 3; i++ {
		installments = append(installments, model.Installment{
			ID:              uuid.New().String(),
			ContractID:      id,
			Number:          i + 1,
			Status:          valueobject.InstallmentStatusDue,
			ScheduledAmount: testutil.Dec("100"),
			PrincipalAmount: testutil.Dec("100"),
			InterestAmount:  decimal.Zero,
			FeeAmount:       decimal.Zero,
			PaidAmount:      decimal.Zero,
			DueDate:         testNow.AddDate(0, 0, 14*(i+1)),
		})
	}
	return model.ReconstructContract(
		id, "MEQ-1000-AAAAAA",
		testutil.TestCustomerID.String(), testutil.TestMerchantID.String(),
		valueobject.ProductPayIn4, valueobject.ContractStatusActive,
		testutil.Dec("300"), testutil.Dec("300"), testutil.Dec("300"), decimal.Zero,
		2, valueobject.FrequencyBiweekly,
		installments[0].DueDate, installments[2].DueDate,
		installments, 1,
		testNow, testNow, testNow, nil,
	)
}

func paymentRequest() dto.ProcessPaymentRequest {
	return dto.ProcessPaymentRequest{
		ContractID:     testutil.TestContractID.String(),
		Amount:         testutil.Dec("100"),
		Currency:       "ETB",
		PaymentMethod:  "wallet",
		IdempotencyKey: "idem-1",
		RequestedBy:    "customer-app",
	}
}

func newProcessPaymentUseCase(contractRepo *mockContractRepository, paymentRepo *mockPaymentRepository) *usecase.ProcessPaymentUseCase {
	return usecase.NewProcessPaymentUseCase(
		contractRepo, paymentRepo,
		&sequenceRefGen{paymentRefs: []string{"PAY-1-AAAAAA", "PAY-1-BBBBBB"}},
		fixedClock{testNow}, testLogger,
	)
}

func TestProcessPayment_Execute(t *testing.T) {
	t.Run("records and allocates a payment", func(t *testing.T) {
		contract := activeContract()
		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return contract, nil
			},
		}
		paymentRepo := &mockPaymentRepository{}

		uc := newProcessPaymentUseCase(contractRepo, paymentRepo)

		resp, err := uc.Execute(context.Background(), paymentRequest())
		require.NoError(t, err)

		assert.Equal(t, "PAY-1-AAAAAA", resp.PaymentReference)
		assert.Equal(t, "COMPLETED", resp.Status)
		testutil.AssertDecimalEqual(t, testutil.Dec("200"), resp.OutstandingBalance)
		assert.Equal(t, "ACTIVE", resp.ContractStatus)
		assert.False(t, resp.Replayed)

		require.Len(t, paymentRepo.recorded, 1)
		require.Len(t, paymentRepo.recordedContracts, 1)
		saved := paymentRepo.recordedContracts[0]
		assert.Equal(t, 2, saved.Version())
		assert.Equal(t, valueobject.InstallmentStatusPaid, saved.Installments()[0].Status)

		audit := paymentRepo.recordedAudits[0]
		assert.Equal(t, model.AuditPaymentProcessed, audit.EventType)
		assert.Equal(t, paymentRepo.recorded[0].ID(), audit.EntityID)
	})

	t.Run("final payment completes the contract", func(t *testing.T) {
		contract := activeContract()
		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return contract, nil
			},
		}
		paymentRepo := &mockPaymentRepository{}

		uc := newProcessPaymentUseCase(contractRepo, paymentRepo)

		req := paymentRequest()
		req.Amount = testutil.Dec("300")
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "COMPLETED", resp.ContractStatus)
		testutil.AssertDecimalEqual(t, decimal.Zero, resp.OutstandingBalance)
	})

	t.Run("replays a known idempotency key without touching the ledger", func(t *testing.T) {
		contract := activeContract()
		stored, err := model.NewPayment("PAY-0-ZZZZZZ", contract.ID(),
			contract.CustomerID(), contract.MerchantID(),
			testutil.Dec("100"), "ETB", "wallet", "idem-1", testNow)
		require.NoError(t, err)
		stored, err = stored.Complete(testNow)
		require.NoError(t, err)

		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return contract, nil
			},
		}
		paymentRepo := &mockPaymentRepository{
			findByIdempotencyKeyFunc: func(ctx context.Context, key string) (model.Payment, bool, error) {
				return stored, true, nil
			},
		}

		uc := newProcessPaymentUseCase(contractRepo, paymentRepo)

		resp, err := uc.Execute(context.Background(), paymentRequest())
		require.NoError(t, err)

		assert.True(t, resp.Replayed)
		assert.Equal(t, stored.ID(), resp.PaymentID)
		assert.Equal(t, "PAY-0-ZZZZZZ", resp.PaymentReference)
		assert.Empty(t, paymentRepo.recorded)
	})

	t.Run("replays on a write-time key collision", func(t *testing.T) {
		contract := activeContract()
		stored, err := model.NewPayment("PAY-0-ZZZZZZ", contract.ID(),
			contract.CustomerID(), contract.MerchantID(),
			testutil.Dec("100"), "ETB", "wallet", "idem-1", testNow)
		require.NoError(t, err)
		stored, err = stored.Complete(testNow)
		require.NoError(t, err)

		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return contract, nil
			},
		}

		// Pre-check misses, the insert collides, the lookup then finds it.
		lookups := 0
		paymentRepo := &mockPaymentRepository{
			findByIdempotencyKeyFunc: func(ctx context.Context, key string) (model.Payment, bool, error) {
				lookups++
				if lookups == 1 {
					return model.Payment{}, false, nil
				}
				return stored, true, nil
			},
			recordFunc: func(context.Context, model.Payment, model.Contract, model.AuditRecord) error {
				return model.ErrDuplicateIdempotencyKey
			},
		}

		uc := newProcessPaymentUseCase(contractRepo, paymentRepo)

		resp, err := uc.Execute(context.Background(), paymentRequest())
		require.NoError(t, err)
		assert.True(t, resp.Replayed)
		assert.Equal(t, stored.ID(), resp.PaymentID)
	})

	t.Run("fails when contract not found", func(t *testing.T) {
		uc := newProcessPaymentUseCase(&mockContractRepository{}, &mockPaymentRepository{})

		_, err := uc.Execute(context.Background(), paymentRequest())
		assert.ErrorIs(t, err, model.ErrContractNotFound)
	})

	t.Run("fails when contract is not active", func(t *testing.T) {
		contract := activeContract()
		suspended, err := contract.Suspend(testNow)
		require.NoError(t, err)

		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return suspended, nil
			},
		}
		paymentRepo := &mockPaymentRepository{}

		uc := newProcessPaymentUseCase(contractRepo, paymentRepo)

		_, err = uc.Execute(context.Background(), paymentRequest())
		assert.ErrorIs(t, err, model.ErrContractNotActive)
		assert.Empty(t, paymentRepo.recorded)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		contract := activeContract()
		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return contract, nil
			},
		}
		uc := newProcessPaymentUseCase(contractRepo, &mockPaymentRepository{})

		req := paymentRequest()
		req.Amount = decimal.Zero
		_, err := uc.Execute(context.Background(), req)
		assert.Error(t, err)
	})

	t.Run("surfaces version conflicts without retrying", func(t *testing.T) {
		contract := activeContract()
		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return contract, nil
			},
		}
		attempts := 0
		paymentRepo := &mockPaymentRepository{
			recordFunc: func(context.Context, model.Payment, model.Contract, model.AuditRecord) error {
				attempts++
				return model.ErrVersionConflict
			},
		}

		uc := newProcessPaymentUseCase(contractRepo, paymentRepo)

		_, err := uc.Execute(context.Background(), paymentRequest())
		assert.ErrorIs(t, err, model.ErrVersionConflict)
		assert.Equal(t, 1, attempts)
	})

	t.Run("empty idempotency key skips the replay path", func(t *testing.T) {
		contract := activeContract()
		contractRepo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				return contract, nil
			},
		}
		lookups := 0
		paymentRepo := &mockPaymentRepository{
			findByIdempotencyKeyFunc: func(ctx context.Context, key string) (model.Payment, bool, error) {
				lookups++
				return model.Payment{}, false, nil
			},
		}

		uc := newProcessPaymentUseCase(contractRepo, paymentRepo)

		req := paymentRequest()
		req.IdempotencyKey = ""
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 0, lookups)
	})

	t.Run("idempotency lookup failure aborts", func(t *testing.T) {
		boom := errors.New("db down")
		paymentRepo := &mockPaymentRepository{
			findByIdempotencyKeyFunc: func(ctx context.Context, key string) (model.Payment, bool, error) {
				return model.Payment{}, false, boom
			},
		}

		uc := newProcessPaymentUseCase(&mockContractRepository{}, paymentRepo)

		_, err := uc.Execute(context.Background(), paymentRequest())
		assert.ErrorIs(t, err, boom)
	})
}
