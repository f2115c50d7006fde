package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/api/handlers"
	"github.com/massfitdev/massfit-bot/pkg/config"
	"github.com/massfitdev/massfit-bot/pkg/logger"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }

func newTestRouter(t *testing.T, deps map[string]handlers.Pinger) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "ops-test", Level: logger.ParseLevel("error")})
	return NewRouter(cfg, logg, deps, prometheus.NewRegistry())
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-MassFit-Env"))
	assert.Contains(t, rec.Body.String(), `"status":"live"`)
}

func TestHealthReadyAllDependenciesUp(t *testing.T) {
	router := newTestRouter(t, map[string]handlers.Pinger{
		"database": stubPinger{},
		"redis":    stubPinger{},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestHealthReadyReportsFailures(t *testing.T) {
	router := newTestRouter(t, map[string]handlers.Pinger{
		"database": stubPinger{},
		"redis":    stubPinger{err: errors.New("connection refused")},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "DEPENDENCY_ERROR")
	assert.Contains(t, rec.Body.String(), "redis")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}
