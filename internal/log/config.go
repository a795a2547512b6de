package log

import (
	"io"
	"os"
	"strings"
)

// Format of log records.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}
	return "json"
}

// ParseFormat accepts "text" or "console" for text. Anything else is JSON.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "text", "console":
		return FormatText
	}
	return FormatJSON
}

// Output is where records are written. The zero value is stderr.
type Output struct {
	writer io.Writer
}

func NewOutput(w io.Writer) Output {
	return Output{writer: w}
}

func (o Output) Writer() io.Writer {
	if o.writer == nil {
		return os.Stderr
	}
	return o.writer
}

// Config configures a Logger.
type Config struct {
	Level     Level
	Format    Format
	Output    Output
	AddSource bool

	// ServiceName is attached to every record when set.
	ServiceName string
}

// DefaultConfig logs JSON at info level to stderr, keeping stdout free for
// the rendered air-tasking order.
func DefaultConfig() Config {
	return Config{
		Level:       LevelInfo,
		Format:      FormatJSON,
		ServiceName: "commander",
	}
}
