package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// state is the process-wide tracer provider. A nil sdk means tracing is
// off and spans go to a noop provider.
var state struct {
	mu  sync.RWMutex
	sdk *sdktrace.TracerProvider
}

// InitProvider installs the tracer provider described by cfg, replacing
// any earlier one, and returns its shutdown function.
func InitProvider(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		install(nil)
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
		),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRate)),
	}
	switch {
	case cfg.Exporter == nil:
	case cfg.Synchronous:
		opts = append(opts, sdktrace.WithSyncer(cfg.Exporter))
	default:
		opts = append(opts, sdktrace.WithBatcher(cfg.Exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	install(tp)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func sampler(rate float64) sdktrace.Sampler {
	if rate >= 1.0 {
		return sdktrace.AlwaysSample()
	}
	// Child spans of a planning pass follow the pass's decision.
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}

func install(tp *sdktrace.TracerProvider) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.sdk = tp
}

func current() *sdktrace.TracerProvider {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.sdk
}

// Shutdown flushes and stops the installed provider, if any.
func Shutdown(ctx context.Context) error {
	if tp := current(); tp != nil {
		return tp.Shutdown(ctx)
	}
	return nil
}

// ForceFlush exports pending spans without stopping the provider.
func ForceFlush(ctx context.Context) error {
	if tp := current(); tp != nil {
		return tp.ForceFlush(ctx)
	}
	return nil
}

// GetTracerProvider returns the installed provider, or a noop one when
// tracing is off.
func GetTracerProvider() trace.TracerProvider {
	if tp := current(); tp != nil {
		return tp
	}
	return noop.NewTracerProvider()
}
