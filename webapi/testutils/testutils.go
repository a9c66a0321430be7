// Package testutils provides helpers for exercising the teller API in tests.
package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/atm/pkg/config"
	domain "github.com/amirasaad/atm/pkg/domain/atm"
	atmservice "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/amirasaad/atm/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// NewTestApp builds a Fiber app over a fresh in-memory engine. The rate
// limiter is configured generously so tests never trip it.
func NewTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.App{
		Env: "test",
		RateLimit: config.RateLimitConfig{
			MaxRequests: 10000,
			Window:      time.Second,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := atmservice.New(domain.New(), logger)
	return webapi.New(svc, cfg)
}

// MakeRequest performs an in-process request against the app and returns the
// response. A non-empty body is sent as JSON.
func MakeRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}
