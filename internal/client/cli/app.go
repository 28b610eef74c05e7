// Package cli implements the interactive command-line client: register and
// login against a running server over gRPC.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/client/client"
)

// clientService is the slice of the gRPC client the CLI needs.
type clientService interface {
	Register(ctx context.Context, email, password string) (*client.RegisteredUser, error)
	Login(ctx context.Context, email, password string) (string, error)
	Ping(ctx context.Context) error
}

type App struct {
	service clientService
	reader  *bufio.Reader
	out     io.Writer
	timeout time.Duration
}

func NewApp(service clientService, in io.Reader, out io.Writer, timeout time.Duration) *App {
	return &App{
		service: service,
		reader:  bufio.NewReader(in),
		out:     out,
		timeout: timeout,
	}
}

// Run dispatches a single subcommand: register, login or ping.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: client [flags] register|login|ping")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	switch args[0] {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "ping":
		return a.Ping(ctx)
	default:
		return fmt.Errorf("unknown command %q, want register|login|ping", args[0])
	}
}
