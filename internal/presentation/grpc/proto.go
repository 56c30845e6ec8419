package grpc

// proto.go defines the gRPC server interface derived from
// meqenet/bnpl/v1/contract.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---------------------------------------------------------------------------
// Wire types (JSON codec)
// ---------------------------------------------------------------------------

// CreateContractRequest mirrors meqenet.bnpl.v1.CreateContractRequest.
type CreateContractRequest struct {
	CustomerID      string `json:"customer_id"`
	MerchantID      string `json:"merchant_id"`
	Product         string `json:"product"`
	PrincipalAmount string `json:"principal_amount"`
}

// CreateContractResponse mirrors meqenet.bnpl.v1.CreateContractResponse.
type CreateContractResponse struct {
	Contract *ContractMessage `json:"contract"`
}

// GetContractRequest mirrors meqenet.bnpl.v1.GetContractRequest.
type GetContractRequest struct {
	ContractID     string `json:"contract_id"`
	ContractNumber string `json:"contract_number"`
}

// GetContractResponse mirrors meqenet.bnpl.v1.GetContractResponse.
type GetContractResponse struct {
	Contract *ContractMessage `json:"contract"`
}

// ProcessPaymentRequest mirrors meqenet.bnpl.v1.ProcessPaymentRequest.
type ProcessPaymentRequest struct {
	ContractID     string `json:"contract_id"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	PaymentMethod  string `json:"payment_method"`
	IdempotencyKey string `json:"idempotency_key"`
}

// ProcessPaymentResponse mirrors meqenet.bnpl.v1.ProcessPaymentResponse.
type ProcessPaymentResponse struct {
	PaymentID          string `json:"payment_id"`
	PaymentReference   string `json:"payment_reference"`
	ContractID         string `json:"contract_id"`
	Amount             string `json:"amount"`
	Currency           string `json:"currency"`
	Status             string `json:"status"`
	OutstandingBalance string `json:"outstanding_balance"`
	ContractStatus     string `json:"contract_status"`
	Replayed           bool   `json:"replayed"`
}

// InstallmentMessage mirrors meqenet.bnpl.v1.Installment.
type InstallmentMessage struct {
	ID              string `json:"id"`
	Number          int    `json:"number"`
	Status          string `json:"status"`
	ScheduledAmount string `json:"scheduled_amount"`
	PrincipalAmount string `json:"principal_amount"`
	InterestAmount  string `json:"interest_amount"`
	FeeAmount       string `json:"fee_amount"`
	PaidAmount      string `json:"paid_amount"`
	DueDate         string `json:"due_date"`
	PaidAt          string `json:"paid_at,omitempty"`
	PaymentID       string `json:"payment_id,omitempty"`
}

// ContractMessage mirrors meqenet.bnpl.v1.Contract.
type ContractMessage struct {
	ID                 string                `json:"id"`
	ContractNumber     string                `json:"contract_number"`
	CustomerID         string                `json:"customer_id"`
	MerchantID         string                `json:"merchant_id"`
	Product            string                `json:"product"`
	Status             string                `json:"status"`
	PrincipalAmount    string                `json:"principal_amount"`
	TotalAmount        string                `json:"total_amount"`
	OutstandingBalance string                `json:"outstanding_balance"`
	APR                string                `json:"apr"`
	TermMonths         int                   `json:"term_months"`
	PaymentFrequency   string                `json:"payment_frequency"`
	FirstPaymentDate   string                `json:"first_payment_date"`
	MaturityDate       string                `json:"maturity_date"`
	Installments       []*InstallmentMessage `json:"installments,omitempty"`
	Version            int                   `json:"version"`
	CreatedAt          string                `json:"created_at"`
	CompletedAt        string                `json:"completed_at,omitempty"`
}

// ---------------------------------------------------------------------------
// Service interface and registration
// ---------------------------------------------------------------------------

// ContractServiceServer is the server API for ContractService.
// It mirrors the proto-generated interface from meqenet.bnpl.v1.ContractService.
type ContractServiceServer interface {
	CreateContract(context.Context, *CreateContractRequest) (*CreateContractResponse, error)
	GetContract(context.Context, *GetContractRequest) (*GetContractResponse, error)
	ProcessPayment(context.Context, *ProcessPaymentRequest) (*ProcessPaymentResponse, error)
	mustEmbedUnimplementedContractServiceServer()
}

// UnimplementedContractServiceServer provides forward-compatible default implementations.
type UnimplementedContractServiceServer struct{}

func (UnimplementedContractServiceServer) CreateContract(context.Context, *CreateContractRequest) (*CreateContractResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateContract not implemented")
}
func (UnimplementedContractServiceServer) GetContract(context.Context, *GetContractRequest) (*GetContractResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetContract not implemented")
}
func (UnimplementedContractServiceServer) ProcessPayment(context.Context, *ProcessPaymentRequest) (*ProcessPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ProcessPayment not implemented")
}
func (UnimplementedContractServiceServer) mustEmbedUnimplementedContractServiceServer() {}

// RegisterContractServiceServer registers the ContractServiceServer with the gRPC server.
func RegisterContractServiceServer(s *grpclib.Server, srv ContractServiceServer) {
	s.RegisterService(&_ContractService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ContractService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "meqenet.bnpl.v1.ContractService",
	HandlerType: (*ContractServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateContract", Handler: _ContractService_CreateContract_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetContract", Handler: _ContractService_GetContract_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "ProcessPayment", Handler: _ContractService_ProcessPayment_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ContractService_CreateContract_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateContractRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ContractServiceServer).CreateContract(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/meqenet.bnpl.v1.ContractService/CreateContract",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ContractServiceServer).CreateContract(ctx, req.(*CreateContractRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ContractService_GetContract_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetContractRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ContractServiceServer).GetContract(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/meqenet.bnpl.v1.ContractService/GetContract",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ContractServiceServer).GetContract(ctx, req.(*GetContractRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ContractService_ProcessPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProcessPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ContractServiceServer).ProcessPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/meqenet.bnpl.v1.ContractService/ProcessPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ContractServiceServer).ProcessPayment(ctx, req.(*ProcessPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}
