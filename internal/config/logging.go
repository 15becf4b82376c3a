package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

const (
	EnvLogLevel  = "LONGEVITY_LOG_LEVEL"
	EnvLogFormat = "LONGEVITY_LOG_FORMAT"
	EnvLogFile   = "LONGEVITY_LOG_FILE"
)

// LoggingConfig controls the service logger.
// When File is set, records fan out to stderr and a JSON log file.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LoggingConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *LoggingConfig) Merge(overlay *LoggingConfig) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
}

// SlogLevel returns Level as a slog.Level.
func (c *LoggingConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the configured logger. The returned cleanup closes the
// log file, if one was opened.
func (c *LoggingConfig) NewLogger() (*slog.Logger, func() error, error) {
	console := c.handler(os.Stderr, c.Format)

	if c.File == "" {
		return slog.New(console), func() error { return nil }, nil
	}

	file, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slogmulti.Fanout(console, c.handler(file, "json")))
	return logger, file.Close, nil
}

// NewLoggerWithWriters builds a fan-out logger over arbitrary writers.
func (c *LoggingConfig) NewLoggerWithWriters(console, file io.Writer) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		c.handler(console, c.Format),
		c.handler(file, "json"),
	))
}

func (c *LoggingConfig) handler(w io.Writer, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func (c *LoggingConfig) loadDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "text"
	}
}

func (c *LoggingConfig) loadEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.File = v
	}
}

func (c *LoggingConfig) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid level: %s", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
		c.Format = strings.ToLower(c.Format)
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
	return nil
}
