package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/atm/internal/logging"
	"github.com/amirasaad/atm/pkg/config"
	domain "github.com/amirasaad/atm/pkg/domain/atm"
	atmservice "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/amirasaad/atm/webapi"
	"github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := logging.New(cfg.Log)

	svc := atmservice.New(domain.New(), logger)
	app := webapi.New(svc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)

	return app.Listen(addr)
}
