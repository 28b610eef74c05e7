// Package client wraps the gRPC connection to the server and translates
// transport statuses into client-side sentinel errors.
package client

import (
	"context"
	"fmt"

	pb "github.com/gatehouse-dev/gatehouse/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// RegisteredUser is the client-side view of a created account.
type RegisteredUser struct {
	ID        int64
	Email     string
	CreatedAt int64
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuthServiceClient
	accessToken string
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	conn, err := grpc.NewClient(endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &GRPCClient{endpointURL: endpointURL, conn: conn, client: pb.NewAuthServiceClient(conn)}, nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*RegisteredUser, error) {

	resp, err := s.client.RegisterUser(ctx, &pb.RegisterUserRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}

	return &RegisteredUser{ID: resp.GetId(), Email: resp.GetEmail(), CreatedAt: resp.GetCreatedAt()}, nil
}

// Login authenticates and remembers the access token for Token().
func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, error) {

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", mapError(err)
	}

	s.accessToken = resp.GetAccessToken()
	return s.accessToken, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return mapError(err)
	}

	if resp.GetStatus() != "OK" {
		return ErrUnavailable
	}

	return nil
}

// Token returns the access token obtained by the last successful Login.
func (s *GRPCClient) Token() string {
	return s.accessToken
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.AlreadyExists:
		return ErrEmailExists
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrInvalidCredentials
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
