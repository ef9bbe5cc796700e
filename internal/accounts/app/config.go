package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer    string        // Issuer claim for session tokens
	JWTSecret string        // Required: HMAC secret for session tokens
	TokenTTL  time.Duration // Session token lifetime (default: 24h)

	StoreDriver  string // "sqlite" or "postgres" (default: sqlite)
	DatabaseDSN  string // Postgres connection string (postgres driver only)
	DatabaseFile string // Path to the SQLite database file (default: ./accounts.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Local development convenience; missing files are fine.
	_ = godotenv.Load(".env")

	return Config{
		Issuer:              getEnvOrDefault("ACCOUNTS_ISSUER", "reelhouse-accounts"),
		JWTSecret:           os.Getenv("ACCOUNTS_JWT_SECRET"),
		TokenTTL:            getEnvDurationOrDefault("ACCOUNTS_TOKEN_TTL", 24*time.Hour),
		StoreDriver:         getEnvOrDefault("ACCOUNTS_STORE_DRIVER", "sqlite"),
		DatabaseDSN:         os.Getenv("ACCOUNTS_DATABASE_DSN"),
		DatabaseFile:        getEnvOrDefault("ACCOUNTS_DATABASE_FILE", "accounts.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
