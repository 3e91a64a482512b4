package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogConfig selects the log level and handler format.
type LogConfig struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string `yaml:"level,omitempty"`
	// Format is text or json. Empty means text.
	Format string `yaml:"format,omitempty"`
}

func (c LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func (c LogConfig) format() (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(c.Format)); f {
	case "", "text":
		return "text", nil
	case "json":
		return f, nil
	default:
		return "", fmt.Errorf("log.format must be text or json (got %q)", c.Format)
	}
}

// SlogLevel returns the configured level. Invalid settings fall back to
// info; Parse rejects them earlier.
func (c LogConfig) SlogLevel() slog.Level {
	level, err := c.level()
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Handler returns a handler in the configured format writing to w.
// Passing a *slog.LevelVar as level lets the caller change it later.
func (c LogConfig) Handler(w io.Writer, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if f, _ := c.format(); f == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Logger returns a logger writing to w at the configured level.
func (c LogConfig) Logger(w io.Writer) *slog.Logger {
	return slog.New(c.Handler(w, c.SlogLevel()))
}
