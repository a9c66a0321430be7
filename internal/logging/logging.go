// Package logging builds the application's slog logger on top of
// charmbracelet/log and installs it as the process default.
package logging

import (
	"log/slog"
	"os"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/charmbracelet/log"
)

// New creates a slog.Logger backed by a charmbracelet handler configured from
// cfg and sets it as slog's default. Unknown levels fall back to info.
func New(cfg config.LogConfig) *slog.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Formatter:       formatter,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
