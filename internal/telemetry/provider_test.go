package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestInitProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	shutdown, err := InitProvider(ctx, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, shutdown(ctx))

	assert.IsType(t, noop.TracerProvider{}, GetTracerProvider())
	assert.NoError(t, Shutdown(ctx))
	assert.NoError(t, ForceFlush(ctx))
}

func TestInitProvider_Batched(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	cfg := DevelopmentConfig()
	cfg.Exporter = exporter

	ctx := context.Background()
	shutdown, err := InitProvider(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = InitProvider(ctx, DefaultConfig()) })

	_, span := StartPassSpan(ctx, "blue", 1)
	span.End()

	require.NoError(t, ForceFlush(ctx))
	assert.Len(t, exporter.GetSpans(), 1)
	require.NoError(t, shutdown(ctx))
}

func TestInitProvider_Synchronous(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	cfg := DevelopmentConfig()
	cfg.Exporter = exporter
	cfg.Synchronous = true

	ctx := context.Background()
	_, err := InitProvider(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = InitProvider(ctx, DefaultConfig()) })

	_, span := StartCommandSpan(ctx, "plan")
	span.End()

	// No flush needed.
	require.Len(t, exporter.GetSpans(), 1)
	assert.Equal(t, "command.plan", exporter.GetSpans()[0].Name)
	require.NoError(t, Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", sampler(1).Description())
	assert.Contains(t, sampler(0.5).Description(), "ParentBased")
}
