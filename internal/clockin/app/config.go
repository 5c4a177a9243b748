package app

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/service"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
	"github.com/joho/godotenv"
)

// Audience is the aud claim of every access token.
const Audience = "clockin"

type Config struct {
	Issuer         string // Issuer claim for tokens (default: clockin)
	BootstrapToken string // Optional: enables POST /v1/bootstrap when set
	KeyFile        string // Optional: PEM Ed25519 signing key, created on first start. Empty means ephemeral keys
	DatabaseFile   string // Path to SQLite database file (default: ./clockin.db)
	PepperFile     string // Path to file containing pepper for password hashing (default: ./pepper)
	PublicURL      string // Client origin used in password reset links
	Timezone       string // IANA zone where a working day starts (default: UTC)

	AccessTTL   time.Duration // Access token lifetime (default: 15m)
	RefreshTTL  time.Duration // Refresh token lifetime (default: 7 days)
	LinkTTL     time.Duration // Login link lifetime (default: 5m)
	RecoveryTTL time.Duration // Password reset link lifetime (default: 1h)

	RedisAddr     string // Optional: keep login links in Redis instead of SQLite
	RedisPassword string

	ResendAPIKey string // Optional: without it reset emails are only logged
	MailFrom     string

	CORSOrigin string // Access-Control-Allow-Origin (default: *)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the configuration from the environment. Values from the
// .env file named by CLOCKIN_ENV_FILE are loaded first and never override
// variables that are already set.
func LoadConfig() Config {
	envFile := getEnvOrDefault("CLOCKIN_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "file", envFile, "error", err)
	}

	return Config{
		Issuer:         getEnvOrDefault("CLOCKIN_ISSUER", "clockin"),
		BootstrapToken: os.Getenv("CLOCKIN_BOOTSTRAP_TOKEN"),
		KeyFile:        os.Getenv("CLOCKIN_KEY_FILE"),
		DatabaseFile:   getEnvOrDefault("CLOCKIN_DATABASE_FILE", "clockin.db"),
		PepperFile:     getEnvOrDefault("CLOCKIN_PEPPER_FILE", "pepper"),
		PublicURL:      strings.TrimSuffix(getEnvOrDefault("CLOCKIN_PUBLIC_URL", "http://localhost:3000"), "/"),
		Timezone:       getEnvOrDefault("CLOCKIN_TIMEZONE", "UTC"),

		AccessTTL:   getEnvDurationOrDefault("CLOCKIN_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:  getEnvDurationOrDefault("CLOCKIN_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		LinkTTL:     getEnvDurationOrDefault("CLOCKIN_LINK_TTL", service.DefaultLinkTTL),
		RecoveryTTL: getEnvDurationOrDefault("CLOCKIN_RECOVERY_TTL", service.DefaultRecoveryTTL),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "Clockin <noreply@clockin.local>"),

		CORSOrigin: getEnvOrDefault("CORS_ALLOWED_ORIGIN", "*"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if intValue, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
