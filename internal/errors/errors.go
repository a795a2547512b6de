package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration defects (CONFIG-001 to CONFIG-099)
	ErrCodeTargetKindMismatch ErrorCode = "CONFIG-001"
	ErrCodeSettingsInvalid    ErrorCode = "CONFIG-002"

	// Theater snapshot errors (THEATER-001 to THEATER-099)
	ErrCodeTheaterNotFound ErrorCode = "THEATER-001"
	ErrCodeTheaterInvalid  ErrorCode = "THEATER-002"

	// ATO errors (ATO-001 to ATO-099)
	ErrCodeATOInvalid ErrorCode = "ATO-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeDirectoryFailed ErrorCode = "IO-004"
	ErrCodeFileUnmarshal   ErrorCode = "IO-005"
	ErrCodeFileMarshal     ErrorCode = "IO-006"
)

// CommanderError is an error with a code, suggestions and an optional cause
type CommanderError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *CommanderError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *CommanderError) Unwrap() error {
	return e.Cause
}

// IsConfigurationDefect reports whether the error points at a wiring bug
// rather than bad input.
func (e *CommanderError) IsConfigurationDefect() bool {
	return strings.HasPrefix(string(e.Code), "CONFIG-")
}

// New creates a new CommanderError
func New(code ErrorCode, message string) *CommanderError {
	return &CommanderError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new CommanderError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *CommanderError {
	return &CommanderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *CommanderError) WithSuggestion(suggestion string) *CommanderError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *CommanderError) WithSuggestions(suggestions ...string) *CommanderError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// NewTargetKindMismatchError reports a mission type wired against a target
// of the wrong category.
func NewTargetKindMismatchError(task string, targetID string, got string, want ...string) *CommanderError {
	return New(ErrCodeTargetKindMismatch,
		fmt.Sprintf("%s cannot be planned against %s target %s (want %s)", task, got, targetID, strings.Join(want, " or "))).
		WithSuggestion("This is a planner wiring bug, not a theater problem")
}

// NewSettingsInvalidError creates a settings validation error
func NewSettingsInvalidError(details string) *CommanderError {
	return New(ErrCodeSettingsInvalid, fmt.Sprintf("invalid settings: %s", details)).
		WithSuggestion("Check the settings file against the documented ranges")
}

// NewTheaterNotFoundError creates a snapshot not found error
func NewTheaterNotFoundError(path string) *CommanderError {
	return New(ErrCodeTheaterNotFound, fmt.Sprintf("theater snapshot not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Pass the snapshot with --theater")
}

// NewTheaterInvalidError creates a snapshot validation error
func NewTheaterInvalidError(details string) *CommanderError {
	return New(ErrCodeTheaterInvalid, fmt.Sprintf("invalid theater snapshot: %s", details)).
		WithSuggestion("Every ground object, control point and front line needs a unique id")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *CommanderError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *CommanderError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
