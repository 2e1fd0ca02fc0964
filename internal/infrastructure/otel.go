package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"auelect/internal/config"
)

// TracerName is the instrumentation scope used by both commands
const TracerName = "auelect"

// TracingConfig holds OpenTelemetry tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Exporter       string // "stdout", "none"
	Output         io.Writer
}

// TracingFromConfig builds a TracingConfig for the named command
func TracingFromConfig(cfg config.TelemetryConfig, command string) TracingConfig {
	return TracingConfig{
		ServiceName:    config.AppName + "-" + command,
		ServiceVersion: config.AppVersion,
		Exporter:       cfg.TraceExporter,
	}
}

// Tracing holds the tracer provider for a batch run
type Tracing struct {
	provider *sdktrace.TracerProvider
	logger   *slog.Logger
}

// InitializeTracing installs a global tracer provider. With exporter "none"
// the global no-op provider is left in place and spans cost nothing.
func InitializeTracing(cfg TracingConfig, logger *slog.Logger) (*Tracing, error) {
	if logger == nil {
		logger = GetLogger()
	}
	t := &Tracing{logger: logger}

	switch cfg.Exporter {
	case "", "none":
		return t, nil
	case "stdout":
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(out),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)

	// Spans export synchronously
	t.provider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(t.provider)

	logger.Debug("Tracing initialized", slog.String("exporter", cfg.Exporter))
	return t, nil
}

// Shutdown flushes and stops the tracer provider
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	return nil
}

// StartSpan starts a span on the global tracer
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError records err on the span in ctx and marks it failed
func RecordError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
