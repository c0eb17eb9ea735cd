package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and treated as immutable.
type Config struct {
	// Server
	ServerPort string

	// Sessions. DatabaseURL is optional; without it sessions live in memory.
	DatabaseURL     string
	SessionLifetime time.Duration
	CookieSecure    bool
	CleanupInterval time.Duration

	// Auth
	AuthDelay     time.Duration
	BcryptCost    int
	RateLimitAuth int

	// CLI
	StatePath string

	// Logging
	LogLevel slog.Level
}

// Load reads .env files (if any) and then the environment. Nothing is
// required; every field has a default.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{
		ServerPort:      getEnvString("SERVER_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SessionLifetime: getEnvDuration("SESSION_LIFETIME", 24*time.Hour),
		CookieSecure:    getEnvBool("COOKIE_SECURE", false),
		CleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", 5*time.Minute),
		AuthDelay:       getEnvDuration("AUTH_DELAY", time.Second),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		RateLimitAuth:   getEnvInt("RATE_LIMIT_AUTH", 20),
		StatePath:       getEnvString("STATE_PATH", defaultStatePath()),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
	return cfg, nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "academicoqa.db"
	}
	return filepath.Join(home, ".academicoqa", "state.db")
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvLevel(key string, defaultVal slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		return defaultVal
	}
	return l
}
