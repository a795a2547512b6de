package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/commander/internal/log"
	"github.com/felixgeelhaar/commander/internal/settings"
	"github.com/felixgeelhaar/commander/internal/telemetry"
	"github.com/felixgeelhaar/commander/internal/version"
)

// Environment variables read when the matching flag is not set.
const (
	envLogLevel  = "COMMANDER_LOG_LEVEL"
	envLogFormat = "COMMANDER_LOG_FORMAT"
	envTelemetry = "COMMANDER_TELEMETRY"
)

// setupObservability loads the dotenv file, then configures logging and
// tracing for the command.
func setupObservability(cmd *cobra.Command, _ []string) error {
	cctx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if err := settings.LoadEnvFile(cctx.EnvFile); err != nil {
		return err
	}

	logger := setupLogging(cmd, cctx)
	setupTelemetry(cmd.Context(), cctx, logger)
	return nil
}

func setupLogging(cmd *cobra.Command, cctx *CommandContext) *log.Logger {
	level := cctx.LogLevel
	if env := os.Getenv(envLogLevel); env != "" && !cmd.Flags().Changed("log-level") {
		level = env
	}
	format := cctx.LogFormat
	if env := os.Getenv(envLogFormat); env != "" && !cmd.Flags().Changed("log-format") {
		format = env
	}

	// Logs go to stderr so stdout carries only the command result.
	logger := log.New(log.Config{
		Level:       log.ParseLevel(level),
		Format:      log.ParseFormat(format),
		Output:      log.NewOutput(cmd.ErrOrStderr()),
		ServiceName: "commander",
	})
	log.SetDefaultLogger(logger)
	return logger
}

func setupTelemetry(ctx context.Context, cctx *CommandContext, logger *log.Logger) {
	if !telemetryRequested(cctx) {
		return
	}

	cfg := telemetry.DevelopmentConfig()
	cfg.ServiceVersion = version.GetInfo().Version
	cfg.Environment = "cli"
	cfg.Exporter = telemetry.NewLogExporter(logger)
	cfg.Synchronous = true

	if _, err := telemetry.InitProvider(ctx, cfg); err != nil {
		logger.Warn("Failed to initialize telemetry", "error", err)
	}
}

func telemetryRequested(cctx *CommandContext) bool {
	if cctx.Trace {
		return true
	}
	switch os.Getenv(envTelemetry) {
	case "on", "true", "1", "enabled":
		return true
	}
	return false
}

// teardownObservability flushes pending spans.
func teardownObservability(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := telemetry.Shutdown(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to flush telemetry: %v\n", err)
	}
	return nil
}
