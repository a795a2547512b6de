package ux

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/commander/internal/errors"
)

// ErrorWithSuggestion wraps an error with a recovery hint.
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion attaches a suggestion to err.
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{Err: err, Suggestion: suggestion}
}

// EnhanceError adds a suggestion to errors that do not carry one yet.
// Coded errors already explain themselves and are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	var cerr *errors.CommanderError
	if stderrors.As(err, &cerr) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such file or directory"):
		switch {
		case strings.Contains(msg, "settings"):
			return NewErrorWithSuggestion(err, "Omit --settings to plan with the default settings")
		case strings.Contains(msg, ".env"):
			return NewErrorWithSuggestion(err, "Create the file or drop --env-file")
		}
		return NewErrorWithSuggestion(err, "Check the path passed on the command line")
	case strings.Contains(msg, "permission denied"):
		return NewErrorWithSuggestion(err, "Check file permissions for the input and output paths")
	case strings.Contains(msg, "address already in use"):
		return NewErrorWithSuggestion(err, "Pick another port with --metrics-addr")
	}
	return err
}

// FormatError enhances err and prefixes it with what was being done.
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
