// Package logger wraps slog.Logger with npyz-specific helpers so that every
// package logs the same operations with the same field names.
package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/arloliu/npyz/errs"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, the process-wide slog default is used.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		return Default()
	}

	return &Logger{Logger: slog.New(handler)}
}

// From wraps an existing slog.Logger. A nil logger yields Default().
func From(l *slog.Logger) *Logger {
	if l == nil {
		return Default()
	}

	return &Logger{Logger: l}
}

// Default returns a Logger backed by slog.Default().
func Default() *Logger {
	return &Logger{Logger: slog.Default()}
}

// Text creates a Logger that writes human-readable logs to w.
func Text(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// JSON creates a Logger that writes JSON logs to w.
func JSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return New(slog.DiscardHandler)
}

// LogEmptyArchive warns that an archive is being written without entries.
func (l *Logger) LogEmptyArchive(ctx context.Context, dest string) {
	l.WarnContext(ctx, errs.ErrEmptyArchive.Error(),
		"destination", dest,
	)
}

// LogOverride records a keyword array replacing a positional one.
func (l *Logger) LogOverride(ctx context.Context, name string) {
	l.DebugContext(ctx, "keyword array overrides positional name",
		"name", name,
	)
}

// LogEntry logs the outcome of writing one archive entry.
func (l *Logger) LogEntry(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "entry write failed",
			"name", name,
			"error", err,
		)

		return
	}

	l.DebugContext(ctx, "entry written",
		"name", name,
		"bytes", size,
	)
}

// LogArchive logs the outcome of a whole archive write.
func (l *Logger) LogArchive(ctx context.Context, dest string, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "archive write failed",
			"destination", dest,
			"entries_written", entries,
			"error", err,
		)

		return
	}

	l.InfoContext(ctx, "archive written",
		"destination", dest,
		"entries", entries,
	)
}

// ParseLevel converts a level name to slog.Level. Unknown names yield
// slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch level {
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
