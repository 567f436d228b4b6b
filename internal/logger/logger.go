// Package logger builds the application's slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	File   string `mapstructure:"file"`
}

const defaultLogFile = "code-reviewer.log"

// NewLogger initializes a new slog logger writing to output. Unknown levels
// fall back to info, unknown formats to text.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		*level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Writer resolves cfg.Output to a writer. The returned cleanup closes the log
// file when one was opened.
func Writer(cfg Config) (io.Writer, func(), error) {
	switch cfg.Output {
	case "stderr":
		return os.Stderr, func() {}, nil
	case "file":
		path := cfg.File
		if path == "" {
			path = defaultLogFile
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		return f, func() { _ = f.Close() }, nil
	default:
		return os.Stdout, func() {}, nil
	}
}
