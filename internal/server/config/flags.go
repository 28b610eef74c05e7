package config

import (
	"flag"
	"os"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-k string   path to the PEM-encoded Ed25519 private key
//	-t int      access token validity, hours
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The token
// validity flag is accepted as an integer in hours and converted to a
// time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-d", "-k", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port for the gRPC endpoint")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port for the HTTP endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.PrivateKeyFile, "k", config.PrivateKeyFile, "path to Ed25519 private key (PEM)")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity duration (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Hour
}
