// Package grpc exposes the authentication service over gRPC. It is a thin
// adapter: request decoding, error-to-status translation and per-request
// logging live here, all decisions live in the services package.
package grpc

import (
	"context"
	"net"

	"github.com/gatehouse-dev/gatehouse/internal/logging"
	pb "github.com/gatehouse-dev/gatehouse/internal/proto"
	"github.com/gatehouse-dev/gatehouse/internal/server/models"
	"google.golang.org/grpc"
)

// authSvc is the slice of the auth service the transport needs.
type authSvc interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedAuthServiceServer
	address string
	auth    authSvc
	logger  logging.Logger
}

func NewGRPCServer(address string, logger logging.Logger, auth authSvc) *GRPCServer {
	return &GRPCServer{
		address: address,
		auth:    auth,
		logger:  logger.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor))

	pb.RegisterAuthServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
