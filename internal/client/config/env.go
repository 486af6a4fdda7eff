package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// loading a .env file first when one exists in the working directory.
//
// Recognized variables:
//   - BACKEND_ADDR: backend host:port or URL
//   - REQUEST_TIMEOUT: per-request timeout in seconds
func parseEnv(cfg *Config) {
	// Missing .env is fine; explicit environment still applies.
	_ = godotenv.Load()

	if v := os.Getenv("BACKEND_ADDR"); v != "" {
		cfg.BackendAddr = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
}
