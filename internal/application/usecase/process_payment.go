package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/dto"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/port"
)

// ProcessPaymentUseCase records a payment and allocates it FIFO across the
// contract's open installments. The payment, the updated contract, the outbox
// event and the audit record are written in one transaction; duplicates by
// idempotency key replay the original result without touching the ledger.
type ProcessPaymentUseCase struct {
	contractRepo port.ContractRepository
	paymentRepo  port.PaymentRepository
	refGen       port.ReferenceGenerator
	clock        port.Clock
	logger       *slog.Logger
}

// NewProcessPaymentUseCase wires dependencies.
func NewProcessPaymentUseCase(
	contractRepo port.ContractRepository,
	paymentRepo port.PaymentRepository,
	refGen port.ReferenceGenerator,
	clock port.Clock,
	logger *slog.Logger,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		contractRepo: contractRepo,
		paymentRepo:  paymentRepo,
		refGen:       refGen,
		clock:        clock,
		logger:       logger,
	}
}

// Execute processes a payment against a contract.
func (uc *ProcessPaymentUseCase) Execute(
	ctx context.Context,
	req dto.ProcessPaymentRequest,
) (dto.PaymentResponse, error) {
	now := uc.clock.Now()

	// 1. Replay check before doing any work.
	if req.IdempotencyKey != "" {
		existing, found, err := uc.paymentRepo.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("idempotency lookup: %w", err)
		}
		if found {
			return uc.replay(ctx, existing)
		}
	}

	// 2. Retrieve the contract.
	contract, err := uc.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find contract: %w", err)
	}

	// 3. Create the payment and mark it collected.
	payment, err := model.NewPayment(
		uc.refGen.PaymentReference(),
		contract.ID(), contract.CustomerID(), contract.MerchantID(),
		req.Amount, req.Currency, req.PaymentMethod, req.IdempotencyKey,
		now,
	)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("create payment: %w", err)
	}
	payment, err = payment.Complete(now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("complete payment: %w", err)
	}

	// 4. Allocate against the schedule and update the ledger.
	contract, err = contract.ApplyPayment(payment, now)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	// 5. Persist atomically. A key collision that slipped past the pre-check
	// (concurrent submission) replays the stored payment.
	audit, err := model.NewAuditRecord(
		model.AuditPaymentProcessed, "Payment", payment.ID(), req.RequestedBy,
		contract.DomainEvents()[len(contract.DomainEvents())-1], now,
	)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("create audit record: %w", err)
	}
	if err := uc.paymentRepo.Record(ctx, payment, contract, audit); err != nil {
		if errors.Is(err, model.ErrDuplicateIdempotencyKey) {
			stored, found, lookupErr := uc.paymentRepo.FindByIdempotencyKey(ctx, req.IdempotencyKey)
			if lookupErr != nil || !found {
				return dto.PaymentResponse{}, fmt.Errorf("record payment: %w", err)
			}
			return uc.replay(ctx, stored)
		}
		return dto.PaymentResponse{}, fmt.Errorf("record payment: %w", err)
	}

	uc.logger.Info("payment processed",
		slog.String("payment_id", payment.ID()),
		slog.String("contract_id", contract.ID()),
		slog.String("amount", payment.Amount().String()),
		slog.String("outstanding_balance", contract.OutstandingBalance().String()),
		slog.String("contract_status", contract.Status().String()),
	)

	return dto.PaymentResponse{
		PaymentID:          payment.ID(),
		PaymentReference:   payment.PaymentReference(),
		ContractID:         contract.ID(),
		Amount:             payment.Amount(),
		Currency:           payment.Currency(),
		Status:             payment.Status().String(),
		OutstandingBalance: contract.OutstandingBalance(),
		ContractStatus:     contract.Status().String(),
		Replayed:           false,
	}, nil
}

// replay rebuilds the response for a payment that was already recorded under
// the same idempotency key. The ledger is read, never mutated.
func (uc *ProcessPaymentUseCase) replay(ctx context.Context, payment model.Payment) (dto.PaymentResponse, error) {
	contract, err := uc.contractRepo.FindByID(ctx, payment.ContractID())
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find contract for replay: %w", err)
	}

	uc.logger.Info("payment replayed",
		slog.String("payment_id", payment.ID()),
		slog.String("idempotency_key", payment.IdempotencyKey()),
	)

	return dto.PaymentResponse{
		PaymentID:          payment.ID(),
		PaymentReference:   payment.PaymentReference(),
		ContractID:         payment.ContractID(),
		Amount:             payment.Amount(),
		Currency:           payment.Currency(),
		Status:             payment.Status().String(),
		OutstandingBalance: contract.OutstandingBalance(),
		ContractStatus:     contract.Status().String(),
		Replayed:           true,
	}, nil
}
