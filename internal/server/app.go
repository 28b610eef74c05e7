// Package server initializes and runs the authentication service: it loads
// the signing key, opens the database, wires the auth core and starts both
// transport endpoints, handling graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/gatehouse-dev/gatehouse/internal/logging"
	"github.com/gatehouse-dev/gatehouse/internal/server/auth"
	"github.com/gatehouse-dev/gatehouse/internal/server/config"
	"github.com/gatehouse-dev/gatehouse/internal/server/db"
	gs "github.com/gatehouse-dev/gatehouse/internal/server/grpc"
	"github.com/gatehouse-dev/gatehouse/internal/server/httpapi"
	"github.com/gatehouse-dev/gatehouse/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
	auth   *services.AuthService
}

// NewApp wires the full server. Any failure here is fatal: the process must
// not come up without its signing key or its database.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	key, err := auth.LoadPrivateKeyFile(cfg.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("signing key error: %w", err)
	}

	issuer, err := auth.NewTokenIssuer(key, cfg.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer error: %w", err)
	}

	svc := services.NewAuthService(rm.Users(), auth.NewArgon2idHasher(), issuer, logger)

	return &App{config: cfg, logger: logger, repos: rm, auth: svc}, nil
}

// Run starts the gRPC and HTTP endpoints and blocks until both have shut
// down. SIGINT/SIGTERM/SIGQUIT or the failure of either endpoint stops the
// other one gracefully.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.auth).Run(ctx)
	})

	g.Go(func() error {
		return httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.auth).Run(ctx)
	})

	return g.Wait()
}
