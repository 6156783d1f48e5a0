package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Logger is a thin wrapper around slog that the rest of the application
// depends on. Development mode logs human-readable text; production logs
// JSON for log aggregation.
type Logger struct {
	slog *slog.Logger
}

// NewLogger creates a logger at the default Info level.
func NewLogger(development bool) *Logger {
	return NewLoggerWithLevel(development, slog.LevelInfo)
}

// NewLoggerWithLevel creates a logger with an explicit minimum level.
func NewLoggerWithLevel(development bool, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if development {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{slog: slog.New(handler)}
}

// ParseLevel converts a LOG_LEVEL string into a slog level, defaulting to
// Info for unknown values.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithFields returns a child logger with the given fields attached to
// every record.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{slog: l.slog.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.slog.Log(ctx, level, msg, args...)
}
