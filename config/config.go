package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const minSecretBytes = 32

type Config struct {
	DatabaseURL string
	HTTPAddr    string

	JWTSecret []byte
	JWTIssuer string

	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	VerificationCodeTTL time.Duration

	UnverifiedDeleteDays int
	CleanupInterval      time.Duration

	ResendAPIKey string
	EmailFrom    string
}

// Load reads configuration from the environment (a local .env is honored
// when present) and applies defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		HTTPAddr:             envOr("HTTP_ADDR", ":8080"),
		JWTSecret:            []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer:            os.Getenv("JWT_ISSUER"),
		AccessTokenTTL:       time.Duration(envInt("ACCESS_TOKEN_TTL_MINUTES", 30)) * time.Minute,
		RefreshTokenTTL:      time.Duration(envInt("REFRESH_TOKEN_TTL_DAYS", 7)) * 24 * time.Hour,
		VerificationCodeTTL:  time.Duration(envInt("VERIFICATION_CODE_TTL_HOURS", 24)) * time.Hour,
		UnverifiedDeleteDays: envInt("UNVERIFIED_DELETE_DAYS", 2),
		CleanupInterval:      time.Duration(envInt("CLEANUP_INTERVAL_HOURS", 24)) * time.Hour,
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		EmailFrom:            os.Getenv("EMAIL_FROM"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if len(cfg.JWTSecret) < minSecretBytes {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretBytes)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
