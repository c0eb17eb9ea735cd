package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"SERVER_PORT", "DATABASE_URL", "SESSION_LIFETIME", "COOKIE_SECURE",
	"SESSION_CLEANUP_INTERVAL", "AUTH_DELAY", "BCRYPT_COST", "RATE_LIMIT_AUTH",
	"STATE_PATH", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, time.Second, cfg.AuthDelay)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 20, cfg.RateLimitAuth)
	assert.NotEmpty(t, cfg.StatePath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/academicoqa")
	t.Setenv("SESSION_LIFETIME", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("AUTH_DELAY", "250ms")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("STATE_PATH", "/tmp/state.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/academicoqa", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionLifetime)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 250*time.Millisecond, cfg.AuthDelay)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "/tmp/state.db", cfg.StatePath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_DELAY", "soon")
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("LOG_LEVEL", "loud")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.AuthDelay)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("RATE_LIMIT_AUTH")
	t.Cleanup(func() { os.Unsetenv("RATE_LIMIT_AUTH") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RATE_LIMIT_AUTH=7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.RateLimitAuth)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
