// Package logger is the structured logging layer shared by the CLI, the API
// server and the masker.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the logging interface passed around spanmask. Components take a
// Logger rather than a *slog.Logger so tests can hand them Discard.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithGroup(name string) Logger
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	*slog.Logger
}

func (l SlogLogger) With(args ...any) Logger {
	return SlogLogger{l.Logger.With(args...)}
}

func (l SlogLogger) WithGroup(name string) Logger {
	return SlogLogger{l.Logger.WithGroup(name)}
}

// New wraps handler.
func New(handler slog.Handler) Logger {
	return SlogLogger{slog.New(handler)}
}

// Default writes text at info level to stderr.
func Default() Logger {
	return Text(os.Stderr, slog.LevelInfo)
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return New(slog.DiscardHandler)
}

// JSON writes one JSON object per record, with source locations.
func JSON(w io.Writer, level slog.Level) Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: level}))
}

// Text writes logfmt-style records.
func Text(w io.Writer, level slog.Level) Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Pretty writes colored records for interactive use.
func Pretty(w io.Writer, level slog.Level) Logger {
	return New(NewPrettyHandler(w, &slog.HandlerOptions{Level: level}))
}

// ForFormat picks the handler named by format: "json", "text" or "pretty".
// Unknown formats fall back to pretty, which is colored only when color is
// set.
func ForFormat(w io.Writer, format string, level slog.Level, color bool) Logger {
	switch format {
	case "json":
		return JSON(w, level)
	case "text":
		return Text(w, level)
	}
	h := NewPrettyHandler(w, &slog.HandlerOptions{Level: level})
	if !color {
		return New(h.WithoutColor())
	}
	return New(h)
}

type loggerKey struct{}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by WithContext, or Default.
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return logger
	}
	return Default()
}

// ParseLevel converts a level name to slog.Level, ignoring case. Unknown
// names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
