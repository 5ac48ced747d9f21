// Package logging wraps log/slog for cmd/paramcut, configurable for JSON or
// text output and for rotating file output via lumberjack. The core paramcut
// package never imports this: Session.Solve runs on a hot numerical path with
// no logging calls, exactly like the pseudoflow engine it is ported from.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the logger's level, output format, and destination.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, stderr, file
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// New builds a slog.Logger per cfg.
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "stderr":
		writer = os.Stderr
	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "logs/paramcut.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			writer = os.Stdout
		} else {
			writer = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			}
		}
	default:
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler)
}

// WithRun returns a logger tagged with the run's UUID, for use across one
// cmd/paramcut invocation's log lines.
func WithRun(l *slog.Logger, runID string) *slog.Logger {
	return l.With("run_id", runID)
}
