// Package httpapi exposes the authentication service over HTTP/JSON using
// echo. Like the gRPC adapter it only decodes requests, maps errors to
// status codes and encodes responses.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/logging"
	"github.com/gatehouse-dev/gatehouse/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

type authSvc interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type Server struct {
	address string
	auth    authSvc
	logger  logging.Logger
}

func NewServer(address string, logger logging.Logger, auth authSvc) *Server {
	return &Server{
		address: address,
		auth:    auth,
		logger:  logger.With("module", "http_server"),
	}
}

// newEcho builds the router with middleware and routes registered. Split
// out of Run so handler tests can exercise the full routing table.
func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.requestLogMiddleware)

	e.POST("/auth/register", s.handleRegister)
	e.POST("/auth/login", s.handleLogin)
	e.GET("/healthz", s.handleHealthz)

	return e
}

func (s *Server) Run(ctx context.Context) error {

	e := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
