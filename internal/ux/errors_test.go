package ux

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/felixgeelhaar/commander/internal/errors"
)

func TestErrorWithSuggestion(t *testing.T) {
	assert.Nil(t, NewErrorWithSuggestion(nil, "ignored"))

	base := errors.New("boom")
	err := NewErrorWithSuggestion(base, "try again")
	assert.Equal(t, "boom\n\nSuggestion: try again", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Equal(t, "boom", NewErrorWithSuggestion(base, "").Error())
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		suggestion string
	}{
		{
			name:       "missing settings file",
			err:        errors.New("open settings.yaml: no such file or directory"),
			suggestion: "default settings",
		},
		{
			name:       "missing env file",
			err:        errors.New("open prod.env: no such file or directory"),
			suggestion: "--env-file",
		},
		{
			name:       "other missing file",
			err:        errors.New("open out/ato.yaml: no such file or directory"),
			suggestion: "command line",
		},
		{
			name:       "permission denied",
			err:        errors.New("open ato.yaml: permission denied"),
			suggestion: "permissions",
		},
		{
			name:       "port taken",
			err:        errors.New("listen tcp :9090: bind: address already in use"),
			suggestion: "--metrics-addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enhanced := EnhanceError(tt.err)

			var ews *ErrorWithSuggestion
			require.ErrorAs(t, enhanced, &ews)
			assert.Contains(t, ews.Suggestion, tt.suggestion)
			assert.ErrorIs(t, enhanced, tt.err)
		})
	}
}

func TestEnhanceError_Unchanged(t *testing.T) {
	assert.Nil(t, EnhanceError(nil))

	plain := errors.New("planner exploded")
	assert.Same(t, plain, EnhanceError(plain))

	// Coded errors are never decorated, even when they mention a file.
	coded := fmt.Errorf("blue pass: %w", cerrors.NewFileNotFoundError("theater.yaml"))
	assert.Same(t, coded, EnhanceError(coded))
}

func TestFormatError(t *testing.T) {
	assert.Nil(t, FormatError(nil, "loading settings"))

	err := FormatError(errors.New("open settings.yaml: no such file or directory"), "loading settings")
	assert.Contains(t, err.Error(), "loading settings: open settings.yaml")
	assert.Contains(t, err.Error(), "Suggestion:")

	settings := cerrors.NewSettingsInvalidError("saturation_waves must not be negative")
	err = FormatError(settings, "")
	assert.Same(t, error(settings), err)
}
