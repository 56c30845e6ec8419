package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/dto"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/port"
)

// GetContractUseCase retrieves a contract with its full installment schedule.
type GetContractUseCase struct {
	contractRepo port.ContractRepository
}

// NewGetContractUseCase wires dependencies.
func NewGetContractUseCase(contractRepo port.ContractRepository) *GetContractUseCase {
	return &GetContractUseCase{contractRepo: contractRepo}
}

// Execute looks up a contract by ID, falling back to contract number.
func (uc *GetContractUseCase) Execute(
	ctx context.Context,
	req dto.GetContractRequest,
) (dto.ContractResponse, error) {
	var (
		contract model.Contract
		err      error
	)

	switch {
	case req.ContractID != "":
		contract, err = uc.contractRepo.FindByID(ctx, req.ContractID)
	case req.ContractNumber != "":
		contract, err = uc.contractRepo.FindByNumber(ctx, req.ContractNumber)
	default:
		return dto.ContractResponse{}, errors.New("contract ID or contract number is required")
	}
	if err != nil {
		return dto.ContractResponse{}, fmt.Errorf("find contract: %w", err)
	}

	return ToContractResponse(contract, true), nil
}
