// Package config loads runtime settings for the Verdantly client.
// Sources are layered: defaults, then .env / environment variables, then a
// JSON file, then command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - BackendAddr: host:port (or full URL) of the Verdantly backend. This is
//     the single external configuration value the core requires.
//   - RequestTimeout: per-request timeout for backend calls.
type Config struct {
	BackendAddr    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendAddr = "127.0.0.1:5050"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), JSON (if
// present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
