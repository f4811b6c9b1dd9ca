package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/runmoore/scrabble-score/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.ObservabilityConfig{
		ServiceName: "scrabble-score",
		Environment: "test",
		LogLevel:    "warn",
	}, &buf)

	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "scrabble-score", record["service"])
	assert.Equal(t, "test", record["env"])
	assert.Equal(t, "v", record["k"])
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.ObservabilityConfig{LogFormat: "text", LogLevel: "debug"}, &buf)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg, "test")
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "RecordScore", "GameService")
	m.RecordOperationAttempt(ctx, "RecordScore", "GameService")
	m.RecordOperationSuccess(ctx, "RecordScore", "GameService")
	m.RecordOperationFailure(ctx, "RecordScore", "GameService")
	m.RecordOperationDuration(ctx, "RecordScore", "GameService", 20*time.Millisecond)
	m.RecordScore(ctx)
	m.RecordGameCompleted(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("GameService", "RecordScore")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.successes.WithLabelValues("GameService", "RecordScore")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("GameService", "RecordScore")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scoresRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gamesCompleted))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	obs := newWithWriter(config.ObservabilityConfig{ServiceName: "svc"}, &buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(obs.Logger, obs.Metrics))
	r.Get("/games/{gameID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.Metrics.httpRequests.WithLabelValues("GET", "/games/{gameID}", "4xx")))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "HTTP request", record["msg"])
	assert.Equal(t, "/games/abc", record["path"])
	assert.EqualValues(t, 404, record["status"])
	assert.NotEmpty(t, record["correlation_id"])
}

func TestNoop(t *testing.T) {
	m := NewNoop()
	ctx := context.Background()
	m.RecordOperationAttempt(ctx, "op", "svc")
	m.RecordScore(ctx)
	assert.NotNil(t, m)
}

func TestMetricsNamespace(t *testing.T) {
	assert.Equal(t, "scrabble_score", metricsNamespace(""))
	assert.Equal(t, "my_app", metricsNamespace("my-app"))
}
