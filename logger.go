package vecrank

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vecrank-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithMode adds the ranking mode field to the logger.
func (l *Logger) WithMode(mode string) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode),
	}
}

// WithCount adds a node count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogIndexBuild logs completion of the similarity index construction phase.
func (l *Logger) LogIndexBuild(ctx context.Context, count, dimension int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"count", count,
			"dimension", dimension,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "index build completed",
		"count", count,
		"dimension", dimension,
		"elapsed", elapsed,
	)
}

// LogMaterialize logs completion of the graph materialization phase.
func (l *Logger) LogMaterialize(ctx context.Context, count, edges, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "graph materialization failed",
			"count", count,
			"workers", workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "graph materialization completed",
		"count", count,
		"edges", edges,
		"workers", workers,
		"elapsed", elapsed,
	)
}

// LogRank logs completion of a ranking run.
func (l *Logger) LogRank(ctx context.Context, mode string, count, iterations, dangling int, elapsed time.Duration) {
	l.InfoContext(ctx, "ranking completed",
		"mode", mode,
		"count", count,
		"iterations", iterations,
		"dangling", dangling,
		"elapsed", elapsed,
	)
}

// LogZeroMass logs that a rank vector summed to zero and was resolved by policy.
func (l *Logger) LogZeroMass(ctx context.Context, mode, policy string) {
	l.WarnContext(ctx, "rank vector has zero mass",
		"mode", mode,
		"policy", policy,
	)
}
