package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubMail bool

func (m stubMail) Configured() bool { return bool(m) }

func serveHealth(t *testing.T, store, cache Pinger, mail MailStatus) (int, map[string]any) {
	t.Helper()

	logger := log.NewLogger(io.Discard, slog.LevelError)
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewMonitoringController(store, "sqlite", cache, mail, logger))

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealthCheck_Healthy(t *testing.T) {
	code, resp := serveHealth(t, stubPinger{}, stubPinger{}, stubMail(true))

	assert.Equal(t, http.StatusOK, code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, float64(1), data["store"])
	assert.Equal(t, "sqlite", data["store_driver"])
	assert.Equal(t, float64(1), data["cache"])
	assert.Equal(t, float64(1), data["email"])
}

func TestHealthCheck_NoCacheNoMail(t *testing.T) {
	code, resp := serveHealth(t, stubPinger{}, nil, nil)

	assert.Equal(t, http.StatusOK, code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, float64(0), data["cache"])
	assert.Equal(t, float64(0), data["email"])
}

func TestHealthCheck_StoreDown(t *testing.T) {
	code, resp := serveHealth(t, stubPinger{err: errors.New("refused")}, nil, stubMail(false))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Store unavailable", resp["error"])
}
