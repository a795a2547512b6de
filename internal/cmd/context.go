package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/commander/internal/ux"
)

// CommandContext holds the persistent flags shared by every command.
type CommandContext struct {
	LogLevel  string
	LogFormat string
	Format    string
	NoColor   bool
	EnvFile   string
	Trace     bool
}

// NewCommandContext extracts the persistent flags from cmd.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()

	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, err
	}
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return nil, err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return nil, err
	}
	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return nil, err
	}
	trace, err := flags.GetBool("trace")
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Format:    format,
		NoColor:   noColor,
		EnvFile:   envFile,
		Trace:     trace,
	}, nil
}

// Formatter returns the output formatter selected by --format, writing to
// the command's output.
func (c *CommandContext) Formatter(cmd *cobra.Command) (ux.Formatter, error) {
	return ux.NewFormatter(c.Format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: c.NoColor,
	})
}
