package telemetry

import sdktrace "go.opentelemetry.io/otel/sdk/trace"

// Config holds configuration for the tracer
type Config struct {
	// ServiceName is the name of the service
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment is the deployment environment (dev, staging, production)
	Environment string

	// Enabled determines whether tracing is enabled
	// When false, a noop tracer is used
	Enabled bool

	// Exporter receives finished spans. When nil, spans are recorded but
	// not exported.
	Exporter sdktrace.SpanExporter

	// Synchronous exports every span as it ends instead of batching. The
	// CLI uses it so spans are logged next to the messages they time.
	Synchronous bool

	// SampleRate is the fraction of traces to sample (0.0 to 1.0)
	SampleRate float64
}

// DefaultConfig returns the configuration used by the CLI.
// Tracing is disabled by default.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "commander",
		ServiceVersion: "dev",
		Environment:    "development",
		Enabled:        false,
		SampleRate:     1.0,
	}
}

// DevelopmentConfig returns a configuration with tracing enabled and every
// trace sampled.
func DevelopmentConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	return cfg
}
