// Package observability wires logging, metrics and tracing for the service.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/runmoore/scrabble-score/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the shared telemetry handles passed to modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *PrometheusMetrics
	tracers  trace.TracerProvider
}

// New builds the logger, a fresh Prometheus registry and the tracer provider.
// Tracing uses the global OpenTelemetry provider, which is a no-op until an
// exporter is installed.
func New(cfg config.ObservabilityConfig) *Observability {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg config.ObservabilityConfig, w io.Writer) *Observability {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   NewLogger(cfg, w),
		Registry: registry,
		Metrics:  NewPrometheusMetrics(registry, metricsNamespace(cfg.ServiceName)),
		tracers:  otel.GetTracerProvider(),
	}
}

// Tracer returns a named tracer for a module.
func (o *Observability) Tracer(name string) trace.Tracer {
	return o.tracers.Tracer(name)
}

// NewLogger builds a slog logger for the configured level and format.
func NewLogger(cfg config.ObservabilityConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.ServiceName != "" {
		logger = logger.With(slog.String("service", cfg.ServiceName))
	}
	if cfg.Environment != "" {
		logger = logger.With(slog.String("env", cfg.Environment))
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func metricsNamespace(serviceName string) string {
	if serviceName == "" {
		return "scrabble_score"
	}
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(serviceName)
}
