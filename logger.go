package flop

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is a slog.Logger with helpers for the events flop emits.
// Attribute keys are shared across helpers: task, priority, duration, codec.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler writes text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(nil, slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger writes JSON records at or above level to w (stderr if nil).
func NewJSONLogger(w io.Writer, level slog.Leveler) *Logger {
	return NewLogger(slog.NewJSONHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NewTextLogger writes logfmt records at or above level to w (stderr if nil).
func NewTextLogger(w io.Writer, level slog.Leveler) *Logger {
	return NewLogger(slog.NewTextHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards every record.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

func orStderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// WithTask adds a task sequence number to the logger.
func (l *Logger) WithTask(seq uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("task", seq),
	}
}

// WithComponent tags the logger with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// LogTask logs the outcome of an executed task.
func (l *Logger) LogTask(ctx context.Context, seq uint64, priority float64, duration time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "task failed",
			"task", seq,
			"priority", priority,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "task completed",
			"task", seq,
			"priority", priority,
			"duration", duration,
		)
	}
}

// LogTaskPanicked logs a task body that panicked. The panic has already been
// converted into the task's error.
func (l *Logger) LogTaskPanicked(ctx context.Context, seq uint64, recovered any) {
	l.ErrorContext(ctx, "task panicked",
		"task", seq,
		"panic", recovered,
	)
}

// LogRejected logs a submission refused by a full or closed queue.
func (l *Logger) LogRejected(ctx context.Context, queued int, err error) {
	l.WarnContext(ctx, "task rejected",
		"queued", queued,
		"error", err,
	)
}

// LogFrame logs the decoding of a persisted frame.
func (l *Logger) LogFrame(ctx context.Context, codecName string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "frame decode failed",
			"codec", codecName,
			"size", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "frame decoded",
			"codec", codecName,
			"size", size,
		)
	}
}
