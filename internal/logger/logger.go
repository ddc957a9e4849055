// Package logger wraps slog with the process-wide configuration shared by
// every mentionwatch component.
package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init configures the default logger. Debug output is enabled either by the
// argument or the DEBUG environment variable.
func Init(debug bool) {
	level := slog.LevelInfo
	if debug || os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(Logger)
}

func Info(msg string, args ...any) {
	l().Info(msg, args...)
}

func Error(msg string, args ...any) {
	l().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	l().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	l().Warn(msg, args...)
}

func l() *slog.Logger {
	if Logger == nil {
		Init(false)
	}
	return Logger
}
