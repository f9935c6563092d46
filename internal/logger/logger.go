// Package logger configures structured logging for labelctl.
// It uses Go's log/slog package; file output rotates via lumberjack.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger options.
type Config struct {
	// LogDir is the directory for the rotating log file.
	// If empty, logs go to stderr only.
	LogDir string

	// Debug enables debug-level logging.
	Debug bool

	// JSON enables JSON output format. If false, text format is used.
	JSON bool
}

// Init initializes the global slog logger. Diagnostics go to stderr so
// command output on stdout stays machine-readable.
func Init(cfg Config) error {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var writer io.Writer = os.Stderr

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
			return err
		}
		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, "labelctl.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stderr, logFile)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// With returns a logger with the given attributes added to all entries.
func With(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}
