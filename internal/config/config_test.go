package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "4020", cfg.Port)
	assert.True(t, cfg.EnablePlayground)
	assert.Equal(t, "library.db", cfg.DatabaseURL)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, 336, cfg.SessionTTLHours)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LIBRARY_API_PORT", "9000")
	t.Setenv("LIBRARY_ENABLE_PLAYGROUND", "false")
	t.Setenv("DATABASE_URL", "postgres://localhost/library")
	t.Setenv("LIBRARY_SESSION_TTL_HOURS", "1")
	t.Setenv("LIBRARY_SEED_DEMO_DATA", "true")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.EnablePlayground)
	assert.Equal(t, "postgres://localhost/library", cfg.DatabaseURL)
	assert.Equal(t, 1, cfg.SessionTTLHours)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("LIBRARY_ENABLE_PLAYGROUND", "maybe")
	t.Setenv("LIBRARY_SESSION_TTL_HOURS", "two weeks")

	cfg := Load()

	assert.True(t, cfg.EnablePlayground)
	assert.Equal(t, 336, cfg.SessionTTLHours)
}
