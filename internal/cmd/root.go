// Package cmd implements the commander command line.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Every call returns fresh commands
// and flags, so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "commander",
		Short: "Campaign air-tasking planner",
		Long: `commander plans the air-tasking order of a campaign turn.

It reads a theater snapshot, decomposes the side's campaign goals into
mission packages with a hierarchical task network planner and schedules
every package's time over target.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupObservability,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return teardownObservability(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("format", "text", "output format (text, json, yaml)")
	flags.Bool("no-color", false, "disable styled output")
	flags.String("env-file", ".env", "dotenv file with settings overrides")
	flags.Bool("trace", false, "log OpenTelemetry spans at debug level")

	root.AddCommand(newPlanCommand(), newScheduleCommand(), newVersionCommand())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
