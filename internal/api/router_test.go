package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizan/screener/pkg/config"
	"github.com/mizan/screener/pkg/logger"
)

func TestHealthCheck(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})
	router := NewRouter(Handlers{}, log, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsRouteToggle(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})

	enabled := NewRouter(Handlers{}, log, true)
	rec := httptest.NewRecorder()
	enabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	disabled := NewRouter(Handlers{}, log, false)
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
