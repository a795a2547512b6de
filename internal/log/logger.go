// Package log wraps slog with the attributes the planner attaches to every
// record: the service name and, for coded errors, the code and suggestions.
package log

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/felixgeelhaar/commander/internal/errors"
)

// Logger is a structured logger.
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger from config.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == FormatText {
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	} else {
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	}

	logger := slog.New(handler)
	if config.ServiceName != "" {
		logger = logger.With("service", config.ServiceName)
	}
	return &Logger{slog: logger}
}

// Default logs JSON at info level to stderr.
func Default() *Logger {
	return New(DefaultConfig())
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{slog: slog.New(slog.DiscardHandler)}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// WithError attaches err. A CommanderError anywhere in the chain
// contributes its code, suggestions and cause.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	var cerr *errors.CommanderError
	if !stderrors.As(err, &cerr) {
		return l.With("error", err.Error())
	}

	args := []any{"error", err.Error(), "error_code", string(cerr.Code)}
	if len(cerr.Suggestions) > 0 {
		args = append(args, "suggestions", cerr.Suggestions)
	}
	if cerr.Cause != nil {
		args = append(args, "cause", cerr.Cause.Error())
	}
	return l.With(args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}

// Enabled reports whether records at level are written.
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}
