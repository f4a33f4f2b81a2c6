package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
database:
  host: db.internal
  name: chayen
redis:
  addr: cache.internal:6379
session:
  ttl: 2h
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "chayen", cfg.Database.Name)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o644))

	t.Setenv("PORT", "7070")
	t.Setenv("DB_HOST", "env-db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-db", cfg.Database.Host)
}

func TestDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "pos",
		Password: "secret", Name: "chayen", SSLMode: "disable",
	}.DSN()
	assert.Equal(t, "host=localhost port=5432 user=pos password=secret dbname=chayen sslmode=disable", dsn)
}
