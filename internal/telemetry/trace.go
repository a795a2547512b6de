package telemetry

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/commander/internal/errors"
)

func start(ctx context.Context, tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return GetTracerProvider().Tracer(tracer).Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartCommandSpan creates a span for a CLI command execution.
func StartCommandSpan(ctx context.Context, cmdName string) (context.Context, trace.Span) {
	return start(ctx, "commands", "command."+cmdName,
		attribute.String("command", cmdName),
		attribute.String("component", "cli"),
	)
}

// StartPassSpan creates a span for one side's planning pass.
//
//	ctx, span := telemetry.StartPassSpan(ctx, "blue", 3)
//	defer span.End()
func StartPassSpan(ctx context.Context, side string, turn int) (context.Context, trace.Span) {
	return start(ctx, "commander", "commander.pass",
		attribute.String("side", side),
		attribute.Int("turn", turn),
		attribute.String("component", "planner"),
	)
}

// StartScheduleSpan creates a span for a scheduling run over packages.
func StartScheduleSpan(ctx context.Context, packages int) (context.Context, trace.Span) {
	return start(ctx, "scheduler", "scheduler.schedule",
		attribute.Int("packages", packages),
		attribute.String("component", "scheduler"),
	)
}

// RecordSuccess sets attrs and marks the span ok.
func RecordSuccess(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
}

// RecordError marks the span failed. Coded errors also set error_code.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Bool("error", true))

	var cerr *errors.CommanderError
	if stderrors.As(err, &cerr) {
		span.SetAttributes(attribute.String("error_code", string(cerr.Code)))
	}
}
