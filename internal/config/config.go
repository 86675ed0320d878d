// Package config provides configuration management for the library-api service.
package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the library-api service.
type Config struct {
	// Server settings
	Port             string
	EnablePlayground bool

	// Database settings
	DatabaseURL    string
	MigrationsPath string

	// Session settings
	SessionTTLHours int

	// Feature flags
	SeedDemoData bool
}

// Load reads configuration from environment variables with sensible defaults.
// The default database is a local SQLite file so the service runs out of the
// box; point DATABASE_URL at a postgres:// DSN for production.
func Load() *Config {
	return &Config{
		Port:             getEnv("LIBRARY_API_PORT", "4020"),
		EnablePlayground: getEnvBool("LIBRARY_ENABLE_PLAYGROUND", true),

		DatabaseURL:    getEnv("DATABASE_URL", "library.db"),
		MigrationsPath: getEnv("LIBRARY_MIGRATIONS_PATH", "./migrations"),

		SessionTTLHours: getEnvInt("LIBRARY_SESSION_TTL_HOURS", 24*14),

		SeedDemoData: getEnvBool("LIBRARY_SEED_DEMO_DATA", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
