package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	SiteName string `env:"SITE_NAME" envDefault:"Portfolio"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// AdminEmail pins the operator identity. When empty the profile record's email is used.
	AdminEmail        string `env:"ADMIN_EMAIL"         validate:"omitempty,email"`
	SessionSigningKey string `env:"SESSION_SIGNING_KEY" validate:"omitempty,min=32"`

	ResendAPIKey   string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom     string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	EmailWorkers   int    `env:"EMAIL_WORKERS"    envDefault:"2"   validate:"min=1,max=32"`
	EmailQueueSize int    `env:"EMAIL_QUEUE_SIZE" envDefault:"64"  validate:"min=1,max=10000"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	OTPPurgeCron  string        `env:"OTP_PURGE_CRON"  envDefault:"*/30 * * * *" validate:"required"`
	OTPPurgeGrace time.Duration `env:"OTP_PURGE_GRACE" envDefault:"1h"`
}

// Load reads an optional .env file (local only) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
