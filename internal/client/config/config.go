// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Gatehouse client.
//
// Fields:
//   - ServerEndpointAddr: address of the gRPC endpoint to dial.
//   - RequestTimeout: per-request deadline for RPC calls.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
