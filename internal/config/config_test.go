package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "GEN_SEED", "GEN_HOUSEHOLDS",
	"GEN_VOLUNTEERS_SENIOR", "GEN_VOLUNTEERS_EMPLOYEE", "GEN_ACTIVITIES", "GEN_ALERTS",
	"RULES_PATH", "SNAPSHOT_PATH", "DB_ENABLED", "DB_DRIVER", "DB_DSN", "REDIS_ENABLED",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL", "CHAT_MAX_SESSIONS",
}

// clearEnv blanks every key Load reads; empty values are ignored.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 523, cfg.Generator.Households)
	assert.Equal(t, 1050, cfg.Generator.Activities)
	assert.Zero(t, cfg.Generator.Seed)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9000"
generator:
  seed: 42
  households: 10
  alerts: 3
redis:
  enabled: true
  ttl: 30s
`), 0o600))

	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("GEN_ALERTS", "7")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_DRIVER", "pgx")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.HTTP.Addr, "env wins over file")
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, 10, cfg.Generator.Households)
	assert.Equal(t, 7, cfg.Generator.Alerts)
	assert.Equal(t, 150, cfg.Generator.SeniorVolunteers, "untouched keys keep defaults")
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "pgx", cfg.Database.Driver)
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEN_HOUSEHOLDS", "many")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("GEN_SEED", "-1")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEN_HOUSEHOLDS")
	assert.Contains(t, err.Error(), "CACHE_TTL")
	assert.Contains(t, err.Error(), "GEN_SEED")
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [oops"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
