package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/dto"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/port"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
)

// maxContractNumberAttempts bounds regeneration when a generated contract
// number collides with an existing one.
const maxContractNumberAttempts = 3

// CreateContractUseCase originates a contract: terms are calculated, the
// installment schedule generated, and everything persisted atomically with
// its outbox event and audit record.
type CreateContractUseCase struct {
	contractRepo port.ContractRepository
	eligibility  port.MerchantEligibility
	refGen       port.ReferenceGenerator
	clock        port.Clock
	logger       *slog.Logger
}

// NewCreateContractUseCase wires dependencies.
func NewCreateContractUseCase(
	contractRepo port.ContractRepository,
	eligibility port.MerchantEligibility,
	refGen port.ReferenceGenerator,
	clock port.Clock,
	logger *slog.Logger,
) *CreateContractUseCase {
	return &CreateContractUseCase{
		contractRepo: contractRepo,
		eligibility:  eligibility,
		refGen:       refGen,
		clock:        clock,
		logger:       logger,
	}
}

// Execute validates the request, checks merchant eligibility, and creates the
// contract. Contract-number collisions regenerate and retry the whole write
// up to maxContractNumberAttempts times.
func (uc *CreateContractUseCase) Execute(
	ctx context.Context,
	req dto.CreateContractRequest,
) (dto.ContractResponse, error) {
	now := uc.clock.Now()

	// 1. Validate the product code.
	product, err := valueobject.NewProduct(req.Product)
	if err != nil {
		return dto.ContractResponse{}, err
	}

	// 2. Merchant must be allowed to originate this product and amount.
	if err := uc.eligibility.Validate(ctx, req.MerchantID, product, req.PrincipalAmount); err != nil {
		return dto.ContractResponse{}, fmt.Errorf("merchant eligibility: %w", err)
	}

	// 3. Create and persist, regenerating the number on collision.
	var contract model.Contract
	for attempt := 1; ; attempt++ {
		number := uc.refGen.ContractNumber()

		contract, err = model.NewContract(
			number, req.CustomerID, req.MerchantID, product, req.PrincipalAmount, now,
		)
		if err != nil {
			return dto.ContractResponse{}, fmt.Errorf("create contract: %w", err)
		}

		audit, err := model.NewAuditRecord(
			model.AuditContractCreated, "Contract", contract.ID(), req.RequestedBy,
			contract.DomainEvents()[0], now,
		)
		if err != nil {
			return dto.ContractResponse{}, fmt.Errorf("create audit record: %w", err)
		}

		err = uc.contractRepo.Create(ctx, contract, audit)
		if err == nil {
			break
		}
		if !errors.Is(err, model.ErrDuplicateContractNumber) {
			return dto.ContractResponse{}, fmt.Errorf("persist contract: %w", err)
		}
		if attempt >= maxContractNumberAttempts {
			return dto.ContractResponse{}, fmt.Errorf("%w after %d attempts", model.ErrGenerationExhausted, attempt)
		}
		uc.logger.Warn("contract number collision, regenerating",
			slog.String("contract_number", number),
			slog.Int("attempt", attempt),
		)
	}

	uc.logger.Info("contract created",
		slog.String("contract_id", contract.ID()),
		slog.String("contract_number", contract.ContractNumber()),
		slog.String("product", product.String()),
		slog.String("total_amount", contract.TotalAmount().String()),
	)

	return ToContractResponse(contract, true), nil
}

// ToContractResponse maps a Contract aggregate to its external shape.
func ToContractResponse(c model.Contract, withSchedule bool) dto.ContractResponse {
	resp := dto.ContractResponse{
		ID:                 c.ID(),
		ContractNumber:     c.ContractNumber(),
		CustomerID:         c.CustomerID(),
		MerchantID:         c.MerchantID(),
		Product:            c.Product().String(),
		Status:             c.Status().String(),
		PrincipalAmount:    c.PrincipalAmount(),
		TotalAmount:        c.TotalAmount(),
		OutstandingBalance: c.OutstandingBalance(),
		APR:                c.APR(),
		TermMonths:         c.TermMonths(),
		PaymentFrequency:   c.Frequency().String(),
		FirstPaymentDate:   c.FirstPaymentDate(),
		MaturityDate:       c.MaturityDate(),
		Version:            c.Version(),
		CreatedAt:          c.CreatedAt(),
		UpdatedAt:          c.UpdatedAt(),
		CompletedAt:        c.CompletedAt(),
	}

	if withSchedule {
		for _, inst := range c.Installments() {
			resp.Installments = append(resp.Installments, dto.InstallmentResponse{
				ID:              inst.ID,
				Number:          inst.Number,
				Status:          inst.Status.String(),
				ScheduledAmount: inst.ScheduledAmount,
				PrincipalAmount: inst.PrincipalAmount,
				InterestAmount:  inst.InterestAmount,
				FeeAmount:       inst.FeeAmount,
				PaidAmount:      inst.PaidAmount,
				DueDate:         inst.DueDate,
				PaidAt:          inst.PaidAt,
				PaymentID:       inst.PaymentID,
			})
		}
	}

	return resp
}
