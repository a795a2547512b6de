package log

import (
	"log/slog"
	"strings"
)

// Level is the minimum severity a logger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levels = [...]struct {
	name string
	slog slog.Level
}{
	LevelDebug: {"DEBUG", slog.LevelDebug},
	LevelInfo:  {"INFO", slog.LevelInfo},
	LevelWarn:  {"WARN", slog.LevelWarn},
	LevelError: {"ERROR", slog.LevelError},
}

func (l Level) valid() bool {
	return l >= LevelDebug && l <= LevelError
}

func (l Level) String() string {
	if !l.valid() {
		return "UNKNOWN"
	}
	return levels[l].name
}

// ToSlogLevel maps l onto slog. Unknown levels log at info.
func (l Level) ToSlogLevel() slog.Level {
	if !l.valid() {
		return slog.LevelInfo
	}
	return levels[l].slog
}

// ParseLevel parses a level name case-insensitively, defaulting to info.
// "warning" is accepted for warn.
func ParseLevel(s string) Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		return LevelWarn
	}
	for l := range levels {
		if levels[l].name == s {
			return Level(l)
		}
	}
	return LevelInfo
}
