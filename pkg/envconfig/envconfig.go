// Package envconfig loads application configuration from the environment,
// with an optional .env file via godotenv.
package envconfig

import (
	"os"
	"strconv"
	"time"

	"tillpoint/pkg/logger"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads environment variables from the given .env file.
// A missing file is reported to the caller, not fatal.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// GetEnv returns the value of key, or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt returns the integer value of key, or fallback when unset or invalid.
func GetEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// GetLogLevel returns the configured log level.
func GetLogLevel() logger.LogLevel {
	switch GetEnv("LOG_LEVEL", "info") {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// LoadAuthConfig loads auth settings from environment variables.
func LoadAuthConfig() AuthConfig {
	ttl := 24 * time.Hour
	if ttlStr := GetEnv("AUTH_TOKEN_TTL", ""); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		}
	}

	return AuthConfig{
		JWTSecret: GetEnv("JWT_SECRET", ""),
		TokenTTL:  ttl,
	}
}

// CacheConfig holds optional Redis settings. An empty Addr disables caching.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// LoadCacheConfig loads cache settings from environment variables.
func LoadCacheConfig() CacheConfig {
	ttl := 30 * time.Second
	if ttlStr := GetEnv("CACHE_TTL", ""); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		}
	}

	return CacheConfig{
		Addr:     GetEnv("REDIS_ADDR", ""),
		Password: GetEnv("REDIS_PASSWORD", ""),
		DB:       GetEnvInt("REDIS_DB", 0),
		TTL:      ttl,
	}
}
