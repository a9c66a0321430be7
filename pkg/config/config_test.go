package config_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/atm/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 20, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Second, cfg.RateLimit.Window)
	assert.Equal(t, ".", cfg.Ledger.Dir)
}

func TestLoadHonorsEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("RATE_LIMIT_WINDOW", "5s")
	t.Setenv("LEDGER_DIR", "/tmp/ledgers")

	cfg, err := config.Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "/tmp/ledgers", cfg.Ledger.Dir)
}
