package kmeans

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with clustering-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger

	// iterations throttles per-iteration debug records.
	iterations *rate.Sometimes
}

// iterationLogInterval is the minimum spacing between iteration records.
const iterationLogInterval = 250 * time.Millisecond

func newLogger(l *slog.Logger) *Logger {
	return &Logger{
		Logger:     l,
		iterations: &rate.Sometimes{First: 1, Interval: iterationLogInterval},
	}
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return newLogger(slog.New(handler))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return newLogger(slog.New(slog.DiscardHandler))
}

// with derives a logger that shares the iteration throttle of l.
func (l *Logger) with(args ...any) *Logger {
	return &Logger{
		Logger:     l.Logger.With(args...),
		iterations: l.iterations,
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return l.with("k", k)
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return l.with("dimension", dim)
}

// WithCount adds a sample count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return l.with("count", count)
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(a Algorithm) *Logger {
	return l.with("algorithm", a.String())
}

// LogInit logs the completion of centroid initialization.
func (l *Logger) LogInit(ctx context.Context, strategy InitStrategy, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "initialization failed",
			"strategy", strategy.String(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "initialization completed",
		"strategy", strategy.String(),
		"elapsed", elapsed,
	)
}

// LogIteration logs one optimizer iteration. Records are rate limited so
// long runs do not flood the handler.
func (l *Logger) LogIteration(ctx context.Context, iteration int, distSum float64, empty uint64) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.iterations.Do(func() {
		l.DebugContext(ctx, "iteration completed",
			"iteration", iteration,
			"distsum", distSum,
			"empty_clusters", empty,
		)
	})
}

// LogRun logs the outcome of a full clustering run.
func (l *Logger) LogRun(ctx context.Context, iterations int, distSum float64, reason StopReason, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"iterations", iterations,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"iterations", iterations,
		"distsum", distSum,
		"stop", reason.String(),
	)
}
