// Package logging builds the application's slog logger from LoggingConfig.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
)

// New creates the logger described by cfg. Console output goes to w, as JSON when
// cfg.JSONFormat is set and through a charmbracelet/log handler otherwise. When cfg.File
// is set every record is also written as JSON to a rotating file; the returned closer
// releases it and must be closed on exit.
func New(cfg entities.LoggingConfig, w io.Writer) (*slog.Logger, io.Closer) {
	level := parseLevel(string(cfg.GetLevel()))

	var console slog.Handler
	if cfg.JSONFormat {
		console = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		console = log.NewWithOptions(w, log.Options{
			Level:           slogToCharmLevel(level),
			ReportTimestamp: cfg.Verbose,
			Prefix:          "slidefmt",
		})
	}

	if cfg.File == "" {
		return slog.New(console), nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.GetMaxSize(),
		MaxAge:     cfg.GetMaxAge(),
		MaxBackups: cfg.GetMaxBackups(),
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})

	return slog.New(newTeeHandler(console, fileHandler)), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// parseLevel converts a string log level to slog.Level
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slogToCharmLevel maps slog levels onto the four charmbracelet/log levels
func slogToCharmLevel(level slog.Level) log.Level {
	switch {
	case level <= slog.LevelDebug:
		return log.DebugLevel
	case level <= slog.LevelInfo:
		return log.InfoLevel
	case level <= slog.LevelWarn:
		return log.WarnLevel
	default:
		return log.ErrorLevel
	}
}
