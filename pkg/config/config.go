// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// RateLimitConfig holds the per-IP request limiter settings.
type RateLimitConfig struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"20"`
	Window      time.Duration `envconfig:"WINDOW" default:"1s"`
}

// LedgerConfig holds settings for ledger exports written by the console.
type LedgerConfig struct {
	Dir string `envconfig:"DIR" default:"."`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// App is the root application configuration.
type App struct {
	Env       string          `envconfig:"ENV" default:"development"`
	Server    ServerConfig    `envconfig:"SERVER"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Ledger    LedgerConfig    `envconfig:"LEDGER"`
	Log       LogConfig       `envconfig:"LOG"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; missing files are not an error.
func Load(logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"ledger_dir", cfg.Ledger.Dir,
	)
	return &cfg, nil
}
