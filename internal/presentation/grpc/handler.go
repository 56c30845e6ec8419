package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/dto"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/application/usecase"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/auth"
)

// ContractHandler implements ContractServiceServer on top of the use cases.
type ContractHandler struct {
	UnimplementedContractServiceServer

	createContract *usecase.CreateContractUseCase
	getContract    *usecase.GetContractUseCase
	processPayment *usecase.ProcessPaymentUseCase
	logger         *slog.Logger
}

// NewContractHandler creates a new handler with all use-case dependencies.
func NewContractHandler(
	createContract *usecase.CreateContractUseCase,
	getContract *usecase.GetContractUseCase,
	processPayment *usecase.ProcessPaymentUseCase,
	logger *slog.Logger,
) *ContractHandler {
	return &ContractHandler{
		createContract: createContract,
		getContract:    getContract,
		processPayment: processPayment,
		logger:         logger,
	}
}

// CreateContract originates a contract with its installment schedule.
func (h *ContractHandler) CreateContract(ctx context.Context, req *CreateContractRequest) (*CreateContractResponse, error) {
	principal, err := decimal.NewFromString(req.PrincipalAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid principal amount: %v", err)
	}

	resp, err := h.createContract.Execute(ctx, dto.CreateContractRequest{
		CustomerID:      req.CustomerID,
		MerchantID:      req.MerchantID,
		Product:         req.Product,
		PrincipalAmount: principal,
		RequestedBy:     requestedBy(ctx),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &CreateContractResponse{Contract: toContractMessage(resp)}, nil
}

// GetContract retrieves a contract by ID or contract number.
func (h *ContractHandler) GetContract(ctx context.Context, req *GetContractRequest) (*GetContractResponse, error) {
	resp, err := h.getContract.Execute(ctx, dto.GetContractRequest{
		ContractID:     req.ContractID,
		ContractNumber: req.ContractNumber,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &GetContractResponse{Contract: toContractMessage(resp)}, nil
}

// ProcessPayment records a payment against a contract.
func (h *ContractHandler) ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	resp, err := h.processPayment.Execute(ctx, dto.ProcessPaymentRequest{
		ContractID:     req.ContractID,
		Amount:         amount,
		Currency:       req.Currency,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: req.IdempotencyKey,
		RequestedBy:    requestedBy(ctx),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ProcessPaymentResponse{
		PaymentID:          resp.PaymentID,
		PaymentReference:   resp.PaymentReference,
		ContractID:         resp.ContractID,
		Amount:             resp.Amount.StringFixed(2),
		Currency:           resp.Currency,
		Status:             resp.Status,
		OutstandingBalance: resp.OutstandingBalance.StringFixed(2),
		ContractStatus:     resp.ContractStatus,
		Replayed:           resp.Replayed,
	}, nil
}

// requestedBy extracts the authenticated subject for audit attribution.
func requestedBy(ctx context.Context) string {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.UserID.String()
}

// toStatusError maps domain errors onto gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, model.ErrContractNotFound), errors.Is(err, model.ErrPaymentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidProduct):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrContractNotActive), errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, model.ErrGenerationExhausted):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toContractMessage(c dto.ContractResponse) *ContractMessage {
	msg := &ContractMessage{
		ID:                 c.ID,
		ContractNumber:     c.ContractNumber,
		CustomerID:         c.CustomerID,
		MerchantID:         c.MerchantID,
		Product:            c.Product,
		Status:             c.Status,
		PrincipalAmount:    c.PrincipalAmount.StringFixed(2),
		TotalAmount:        c.TotalAmount.StringFixed(2),
		OutstandingBalance: c.OutstandingBalance.StringFixed(2),
		APR:                c.APR.String(),
		TermMonths:         c.TermMonths,
		PaymentFrequency:   c.PaymentFrequency,
		FirstPaymentDate:   c.FirstPaymentDate.Format(time.RFC3339),
		MaturityDate:       c.MaturityDate.Format(time.RFC3339),
		Version:            c.Version,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
	if c.CompletedAt != nil {
		msg.CompletedAt = c.CompletedAt.Format(time.RFC3339)
	}
	for _, inst := range c.Installments {
		im := &InstallmentMessage{
			ID:              inst.ID,
			Number:          inst.Number,
			Status:          inst.Status,
			ScheduledAmount: inst.ScheduledAmount.StringFixed(2),
			PrincipalAmount: inst.PrincipalAmount.StringFixed(2),
			InterestAmount:  inst.InterestAmount.StringFixed(2),
			FeeAmount:       inst.FeeAmount.StringFixed(2),
			PaidAmount:      inst.PaidAmount.StringFixed(2),
			DueDate:         inst.DueDate.Format(time.RFC3339),
			PaymentID:       inst.PaymentID,
		}
		if inst.PaidAt != nil {
			im.PaidAt = inst.PaidAt.Format(time.RFC3339)
		}
		msg.Installments = append(msg.Installments, im)
	}
	return msg
}
