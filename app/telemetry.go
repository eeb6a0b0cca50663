package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	bowlingmetrics "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/metrics"
	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NewLogger builds the application logger from the observability settings.
// Unknown levels fall back to info.
func NewLogger(cfg config.ObservabilityConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}

// NewMetrics creates a registry with the runtime collectors and the scoring
// metrics. It returns a nil registry and no-op metrics when metrics are disabled.
func NewMetrics(cfg config.ObservabilityConfig) (*prometheus.Registry, bowlingmetrics.Metrics, error) {
	if !cfg.MetricsEnabled {
		return nil, bowlingmetrics.NoOpMetrics{}, nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := bowlingmetrics.NewPrometheusMetrics(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return registry, metrics, nil
}

// NewTracer returns a tracer exporting spans over OTLP/HTTP. Tracing is
// opt-in: without tracing_enabled and an endpoint a no-op tracer is returned.
// The shutdown function flushes pending spans.
func NewTracer(ctx context.Context, cfg config.ObservabilityConfig) (trace.Tracer, func(context.Context) error, error) {
	noopShutdown := func(context.Context) error { return nil }

	if !cfg.TracingEnabled || cfg.OTLPEndpoint == "" {
		return noop.NewTracerProvider().Tracer(cfg.ServiceName), noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, noopShutdown, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, noopShutdown, fmt.Errorf("failed to create trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return tp.Tracer(cfg.ServiceName), tp.Shutdown, nil
}
