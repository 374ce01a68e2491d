package app

import (
	"os"
	"strconv"
	"time"

	"github.com/wattleworks/authd/pkg/jwtx"
)

type Config struct {
	Issuer        string // Issuer claim stamped into every token
	SigningSecret string // HS256 secret; generated at startup when unset

	AccessTTL  time.Duration // Access token lifetime (default: 30m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 7d)

	StoreBackend  string // Credential store backend: memory, sqlite, redis (default: memory)
	DatabaseFile  string // Path to the sqlite database file (default: ./auth.db)
	RedisAddr     string // Redis address for the redis backend (default: localhost:6379)
	RedisPassword string // Optional redis password

	SeedUsername string // Bootstrap user created when the store is empty
	SeedPassword string
	SeedEmail    string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("AUTHD_ISSUER", "authd"),
		SigningSecret: os.Getenv("AUTHD_SIGNING_SECRET"),

		AccessTTL:  getEnvDurationOrDefault("AUTHD_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL: getEnvDurationOrDefault("AUTHD_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),

		StoreBackend:  getEnvOrDefault("AUTHD_STORE_BACKEND", "memory"),
		DatabaseFile:  getEnvOrDefault("AUTHD_DATABASE_FILE", "auth.db"),
		RedisAddr:     getEnvOrDefault("AUTHD_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("AUTHD_REDIS_PASSWORD"),

		// Fixture credentials from the boilerplate this service grew out of.
		// Production deployments override these or pre-provision the store.
		SeedUsername: getEnvOrDefault("AUTHD_SEED_USERNAME", "testuser"),
		SeedPassword: getEnvOrDefault("AUTHD_SEED_PASSWORD", "secret123"),
		SeedEmail:    getEnvOrDefault("AUTHD_SEED_EMAIL", "test@example.com"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8000),
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
