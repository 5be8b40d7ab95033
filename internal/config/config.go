package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Path of the single SQLite database file.
	DatabasePath string

	// Session credential signing.
	JWTSecret string
	TokenTTL  time.Duration

	// Optional collaborators. Empty value disables the integration.
	RedisURL     string
	KafkaBrokers []string
}

// LoadConfig reads configuration from the environment, with an optional .env
// file for local development.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "5000"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabasePath: getEnv("DATABASE_PATH", "wellness.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     parseTokenTTL(getEnv("TOKEN_TTL_HOURS", "168")),
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-insecure-secret"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseTokenTTL(hours string) time.Duration {
	h, err := strconv.Atoi(hours)
	if err != nil || h <= 0 {
		h = 7 * 24
	}
	return time.Duration(h) * time.Hour
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
