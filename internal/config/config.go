// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Geocode cache drivers accepted by GEOCACHE_DRIVER.
const (
	GeocacheSQLite = "sqlite"
	GeocachePgx    = "pgx"
	GeocacheOff    = "off"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// ORSAPIKey authenticates against the openrouteservice directions API.
	// Required.
	ORSAPIKey string

	// ORSBaseURL overrides the openrouteservice endpoint, mainly for tests
	// and self-hosted instances. Empty means the public API.
	ORSBaseURL string

	// NominatimBaseURL overrides the Nominatim endpoint. Empty means the
	// public OSM instance.
	NominatimBaseURL string

	// GeocacheDriver selects the geocode cache backend: "sqlite" (default),
	// "pgx", or "off" to disable caching.
	GeocacheDriver string

	// GeocacheDSN is the cache connection string. Defaults to a local
	// SQLite file; a Postgres URL when GeocacheDriver is "pgx".
	GeocacheDSN string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ORSBaseURL:       os.Getenv("ORS_BASE_URL"),
		NominatimBaseURL: os.Getenv("NOMINATIM_BASE_URL"),
		GeocacheDriver:   getEnv("GEOCACHE_DRIVER", GeocacheSQLite),
		GeocacheDSN:      getEnv("GEOCACHE_DSN", "data/geocache.db"),
	}

	var missing []string

	cfg.ORSAPIKey = os.Getenv("ORS_API_KEY")
	if cfg.ORSAPIKey == "" {
		missing = append(missing, "ORS_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch cfg.GeocacheDriver {
	case GeocacheSQLite, GeocachePgx, GeocacheOff:
	default:
		return Config{}, fmt.Errorf("invalid GEOCACHE_DRIVER %q: want sqlite, pgx, or off", cfg.GeocacheDriver)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
