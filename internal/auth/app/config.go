package app

import (
	"os"
	"strconv"
	"time"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
)

type Config struct {
	PrivateKeyFile string // Optional: path to Ed25519 private key PEM; ephemeral key when empty
	PublicKeyFile  string // Optional: separate verification key PEM (defaults to the signing key's public half)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./auth.db)

	AccessTTL  time.Duration // Optional: access token lifetime (default: 1h)
	RefreshTTL time.Duration // Optional: refresh token lifetime (default: 24h)
	ActionTTL  time.Duration // Optional: mailed single-use token lifetime (default: 10m)

	SMTPHost     string // Optional: SMTP relay host; tokens are logged instead when empty
	SMTPPort     int    // Optional: SMTP relay port (default: 587)
	SMTPUsername string
	SMTPPassword string
	MailFrom     string // Sender address for outbound mail
	LinkBase     string // Frontend origin mailed links point at (default: http://localhost:8080)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		PrivateKeyFile: os.Getenv("AUTH_PRIVATE_KEY_FILE"),
		PublicKeyFile:  os.Getenv("AUTH_PUBLIC_KEY_FILE"),
		DatabaseFile:   getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),

		AccessTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TTL", domain.DefaultAccessTTL),
		RefreshTTL: getEnvDurationOrDefault("AUTH_REFRESH_TTL", domain.DefaultRefreshTTL),
		ActionTTL:  getEnvDurationOrDefault("AUTH_ACTION_TTL", domain.DefaultActionTTL),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "accounts@localhost"),
		LinkBase:     getEnvOrDefault("LINK_BASE", "http://localhost:8080"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Policy builds the token lifetime table from the configured overrides.
func (cfg Config) Policy() domain.Policy {
	return domain.DefaultPolicy().
		WithTTL(domain.PurposeAccess, cfg.AccessTTL).
		WithTTL(domain.PurposeRefresh, cfg.RefreshTTL).
		WithTTL(domain.PurposePasswordless, cfg.ActionTTL).
		WithTTL(domain.PurposeVerifyEmail, cfg.ActionTTL).
		WithTTL(domain.PurposeResetPassword, cfg.ActionTTL)
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

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
