package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/flagx"
	"github.com/gatehouse-dev/gatehouse/internal/timex"
)

// JsonConfig is the JSON DTO for the client configuration. Interval fields
// use timex.Duration, so both "10s" and integer nanoseconds parse.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file given via -c or
// -config. When neither flag is set, nothing is loaded. An unreadable or
// invalid file panics; a requested config that cannot be used is a startup
// error.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JSONConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.ServerEndpointAddr = c.ServerEndpointAddr
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
