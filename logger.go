package celllist

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with celllist-specific helpers.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithRadius adds a radius field to the logger.
func (l *Logger) WithRadius(r float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("radius", r),
	}
}

// LogBuild logs a serial or parallel build.
func (l *Logger) LogBuild(ctx context.Context, points, cells, workers int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"points", points,
			"workers", workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "build completed",
		"points", points,
		"cells", cells,
		"workers", workers,
	)
}

// LogMerge logs a merge of two stores.
func (l *Logger) LogMerge(ctx context.Context, left, right, cells int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "merge failed",
			"left_cells", left,
			"right_cells", right,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "merge completed",
		"left_cells", left,
		"right_cells", right,
		"cells", cells,
	)
}

// LogQuery logs a candidate pair enumeration.
// maxWorkerPairs is the largest share produced by one worker and hints at
// imbalance between cell chunks.
func (l *Logger) LogQuery(ctx context.Context, workers, pairs, maxWorkerPairs int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "near neighbor query failed",
			"workers", workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "near neighbor query completed",
		"workers", workers,
		"pairs", pairs,
		"max_worker_pairs", maxWorkerPairs,
	)
}

// LogSnapshot logs a snapshot encode or decode.
func (l *Logger) LogSnapshot(ctx context.Context, op string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot "+op+" failed",
			"bytes", bytes,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "snapshot "+op+" completed",
		"bytes", bytes,
	)
}
