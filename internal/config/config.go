// Package config builds the runtime configuration for the apidex CLI,
// loading .env-style environment defaults the way the teacher's db layer
// reads MORFX_LIBSQL_AUTH_TOKEN. No CLI flag overrides these values.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/oxhq/apidex/internal/search"
)

// Config is the process-wide configuration for an apidex invocation.
type Config struct {
	// StoreDSN is the ingestion-cache DSN: a local sqlite file path, or a
	// "libsql://"/"https://" URL for a remote/replicated cache
	// (internal/store).
	StoreDSN string

	// LibSQLAuthToken authenticates a remote store DSN.
	LibSQLAuthToken string

	// DefaultLimit and DefaultThreshold hold the search package's defaults
	// (spec §6.2). The search command reads search.DefaultLimit and
	// search.DefaultThreshold directly, not these fields.
	DefaultLimit     int
	DefaultThreshold float64
}

// Load reads a .env file if present (ignoring its absence, same as the
// teacher's test bootstrap), then env vars, into a Config with spec §6.2
// defaults.
func Load() Config {
	_ = godotenv.Load() // best-effort; absence of .env is not an error

	cfg := Config{
		StoreDSN:         "apidex.db",
		DefaultLimit:     search.DefaultLimit,
		DefaultThreshold: search.DefaultThreshold,
	}
	if dsn := os.Getenv("APIDEX_STORE_DSN"); dsn != "" {
		cfg.StoreDSN = dsn
	}
	cfg.LibSQLAuthToken = os.Getenv("APIDEX_LIBSQL_AUTH_TOKEN")
	return cfg
}
