package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"auelect/internal/config"
)

func TestInitializeTracing_None(t *testing.T) {
	tr, err := InitializeTracing(TracingConfig{Exporter: "none"}, nil)
	require.NoError(t, err)

	ctx, span := StartSpan(context.Background(), "noop")
	span.End()

	assert.Empty(t, TraceIDFromContext(ctx))
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestInitializeTracing_Stdout(t *testing.T) {
	saved := otel.GetTracerProvider()
	defer otel.SetTracerProvider(saved)

	var out bytes.Buffer
	tr, err := InitializeTracing(TracingConfig{
		ServiceName:    "auelect-test",
		ServiceVersion: "test",
		Exporter:       "stdout",
		Output:         &out,
	}, nil)
	require.NoError(t, err)

	ctx, span := StartSpan(context.Background(), "turnout.parse", attribute.String("file", "a.csv"))
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("columns not found"))
	span.End()

	require.NoError(t, tr.Shutdown(context.Background()))
	assert.Contains(t, out.String(), "turnout.parse")
	assert.Contains(t, out.String(), "columns not found")
}

func TestInitializeTracing_Unsupported(t *testing.T) {
	_, err := InitializeTracing(TracingConfig{Exporter: "otlp"}, nil)
	assert.Error(t, err)
}

func TestTracingFromConfig(t *testing.T) {
	cfg := TracingFromConfig(config.TelemetryConfig{TraceExporter: "stdout"}, "turnout")

	assert.Equal(t, "auelect-turnout", cfg.ServiceName)
	assert.Equal(t, config.AppVersion, cfg.ServiceVersion)
	assert.Equal(t, "stdout", cfg.Exporter)
}

func TestShutdown_NilSafe(t *testing.T) {
	var tr *Tracing
	assert.NoError(t, tr.Shutdown(context.Background()))
	RecordError(context.Background(), nil)
}
