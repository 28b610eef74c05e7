package config

import (
	"flag"
	"os"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server gRPC address (e.g., "127.0.0.1:50051")
//	-t int      request timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so subcommand arguments pass through untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "server gRPC address")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
