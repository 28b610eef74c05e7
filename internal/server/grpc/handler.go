package grpc

import (
	"context"
	"errors"

	"github.com/gatehouse-dev/gatehouse/internal/common"
	pb "github.com/gatehouse-dev/gatehouse/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapServiceError translates service sentinels into gRPC statuses. Messages
// are fixed strings; wrapped causes stay server-side.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, common.ErrorEmailExists):
		return status.Error(codes.AlreadyExists, "email already registered")
	case errors.Is(err, common.ErrorInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, common.ErrorStoreUnavailable):
		return status.Error(codes.Unavailable, "service unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *pb.RegisterUserRequest) (*pb.RegisterUserResponse, error) {

	user, err := s.auth.Register(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, mapServiceError(err)
	}

	// PasswordHash is deliberately absent from the response message.
	return &pb.RegisterUserResponse{
		Id:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Unix(),
	}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	token, err := s.auth.Login(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, mapServiceError(err)
	}

	return &pb.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}
