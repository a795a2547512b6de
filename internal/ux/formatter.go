// Package ux renders command output: air-tasking order tables, procurement
// lists and machine readable reports.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formatter writes a command result.
type Formatter interface {
	Format(data any) error
}

// FormatterOptions configures a formatter.
type FormatterOptions struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer
	// NoColor renders text output without styling.
	NoColor bool
	// Compact disables indentation for JSON and YAML.
	Compact bool
}

// NewFormatter creates the formatter for format.
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case FormatJSON:
		return &JSONFormatter{opts: opts}, nil
	case FormatYAML:
		return &YAMLFormatter{opts: opts}, nil
	case FormatText, "":
		return &TextFormatter{opts: opts, styles: NewStyles(opts.NoColor)}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

// JSONFormatter writes JSON.
type JSONFormatter struct {
	opts *FormatterOptions
}

func (f *JSONFormatter) Format(data any) error {
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// YAMLFormatter writes YAML.
type YAMLFormatter struct {
	opts *FormatterOptions
}

func (f *YAMLFormatter) Format(data any) error {
	encoder := yaml.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent(2)
	}
	defer encoder.Close()
	return encoder.Encode(data)
}

// Renderer is implemented by results with a styled text form.
type Renderer interface {
	Render(styles Styles) string
}

// TextFormatter writes human readable output. Data must be a string, a
// Renderer or a fmt.Stringer.
type TextFormatter struct {
	opts   *FormatterOptions
	styles Styles
}

func (f *TextFormatter) Format(data any) error {
	var out string
	switch v := data.(type) {
	case string:
		out = v
	case Renderer:
		out = v.Render(f.styles)
	case fmt.Stringer:
		out = v.String()
	default:
		return fmt.Errorf("text formatter cannot render %T", data)
	}
	_, err := fmt.Fprintln(f.opts.Writer, out)
	return err
}

var (
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*YAMLFormatter)(nil)
	_ Formatter = (*TextFormatter)(nil)
)
