// Package exitcode maps command errors to process exit codes.
package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/felixgeelhaar/commander/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigurationDefect indicates a planner wiring bug: a mission type
	// was built against a target of the wrong kind.
	ConfigurationDefect = 3

	// InvalidInput indicates an unreadable or invalid theater, settings or
	// air-tasking order file.
	InvalidInput = 4

	// NetworkError indicates the metrics endpoint could not be served
	NetworkError = 6

	// Interrupted indicates the command was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var cerr *errors.CommanderError
	if stderrors.As(err, &cerr) {
		if cerr.IsConfigurationDefect() && cerr.Code != errors.ErrCodeSettingsInvalid {
			return ConfigurationDefect
		}
		return InvalidInput
	}

	errMsg := strings.ToLower(err.Error())

	// Network errors
	if strings.Contains(errMsg, "address already in use") || strings.Contains(errMsg, "listen tcp") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "requires --") {
		return UsageError
	}

	// Default to general error
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ConfigurationDefect:
		return "Configuration defect in the planner"
	case InvalidInput:
		return "Invalid input file"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
