package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/dto"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/usecase"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/testutil"
)

func TestGetContract_Execute(t *testing.T) {
	t.Run("finds by ID with full schedule", func(t *testing.T) {
		contract := activeContract()
		repo := &mockContractRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Contract, error) {
				assert.Equal(t, contract.ID(), id)
				return contract, nil
			},
		}

		uc := usecase.NewGetContractUseCase(repo)

		resp, err := uc.Execute(context.Background(), dto.GetContractRequest{ContractID: contract.ID()})
		require.NoError(t, err)
		assert.Equal(t, contract.ID(), resp.ID)
		assert.Len(t, resp.Installments, 3)
		testutil.AssertDecimalEqual(t, testutil.Dec("300"), resp.OutstandingBalance)
	})

	t.Run("falls back to contract number", func(t *testing.T) {
		contract := activeContract()
		repo := &mockContractRepository{
			findByNumberFunc: func(ctx context.Context, number string) (model.Contract, error) {
				assert.Equal(t, "MEQ-1000-AAAAAA", number)
				return contract, nil
			},
		}

		uc := usecase.NewGetContractUseCase(repo)

		resp, err := uc.Execute(context.Background(), dto.GetContractRequest{ContractNumber: "MEQ-1000-AAAAAA"})
		require.NoError(t, err)
		assert.Equal(t, contract.ID(), resp.ID)
	})

	t.Run("requires an identifier", func(t *testing.T) {
		uc := usecase.NewGetContractUseCase(&mockContractRepository{})
		_, err := uc.Execute(context.Background(), dto.GetContractRequest{})
		assert.Error(t, err)
	})

	t.Run("propagates not found", func(t *testing.T) {
		uc := usecase.NewGetContractUseCase(&mockContractRepository{})
		_, err := uc.Execute(context.Background(), dto.GetContractRequest{ContractID: "nope"})
		assert.ErrorIs(t, err, model.ErrContractNotFound)
	})
}
