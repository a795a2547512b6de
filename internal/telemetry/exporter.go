package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/felixgeelhaar/commander/internal/log"
)

// LogExporter writes finished spans to a logger at debug level. It lets the
// CLI show pass timings without a collector.
type LogExporter struct {
	logger *log.Logger
}

// NewLogExporter creates an exporter writing to logger.
func NewLogExporter(logger *log.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		args := []any{
			"trace_id", s.SpanContext().TraceID().String(),
			"span_id", s.SpanContext().SpanID().String(),
			"duration", s.EndTime().Sub(s.StartTime()),
			"status", s.Status().Code.String(),
		}
		if s.Parent().IsValid() {
			args = append(args, "parent_id", s.Parent().SpanID().String())
		}
		for _, kv := range s.Attributes() {
			args = append(args, string(kv.Key), kv.Value.Emit())
		}
		e.logger.DebugContext(ctx, "span "+s.Name(), args...)
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (e *LogExporter) Shutdown(context.Context) error {
	return nil
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)
