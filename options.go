package kmeans

type options struct {
	logger *Logger
}

// Option configures engine construction.
//
// Per-run behaviour (random source, abort policy, callbacks) lives in Config.
type Option func(*options)

// WithLogger configures structured logging for the engine and every run that
// does not set Config.Logger.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeans.NewJSONLogger(slog.LevelInfo)
//	km, _ := kmeans.New(samples, n, dims, kmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
