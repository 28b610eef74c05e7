package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// requestLogInterceptor tags every call with a request id and logs method,
// status code and duration. Request payloads are never logged; they carry
// plaintext passwords.
func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	requestID := uuid.NewString()
	start := time.Now()

	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "request handled",
		"request_id", requestID,
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}
