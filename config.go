package kmeans

import "math/rand/v2"

// seedStream is the PCG stream used when Config.Rand is nil.
const seedStream = 0x2545f4914f6cdd1d

// Config carries the per-run parameters consumed by initializers and
// optimizers. The zero value (and a nil *Config) is valid: every field has a
// documented default that is applied once at the start of a run.
//
// A Config holding a Rand must not be used by two runs at the same time;
// *rand.Rand is not safe for concurrent use.
type Config[T Primitive] struct {
	// Rand is the random source for initializers and minibatch sampling.
	// Results are deterministic whenever Rand is.
	// Default: a PCG generator seeded with Seed, created afresh for every run.
	Rand *rand.Rand

	// Seed seeds the default generator. Ignored when Rand is set.
	Seed uint64

	// AbortStrategy decides early stopping from the objective history.
	// Default: DefaultAbortStrategy.
	AbortStrategy AbortStrategy

	// InitDone is called once after the initializer placed all centroids.
	InitDone func(s *State[T])

	// IterationDone is called after every optimizer iteration with the
	// 1-based iteration number and the objective seen in it. For minibatch
	// runs the objective is the batch distance sum scaled to the full set.
	IterationDone func(s *State[T], iteration int, distSum T)

	// Centroids holds k*dims initial values for the Precomputed initializer.
	Centroids []T

	// Logger overrides the engine logger for this run.
	Logger *Logger

	// Metrics receives init, iteration and run measurements.
	// Default: NoopMetricsCollector.
	Metrics MetricsCollector
}

// withDefaults returns a copy of c with every unset field defaulted.
func (c *Config[T]) withDefaults() *Config[T] {
	var out Config[T]
	if c != nil {
		out = *c
	}
	if out.Rand == nil {
		out.Rand = rand.New(rand.NewPCG(out.Seed, seedStream))
	}
	if out.AbortStrategy == nil {
		out.AbortStrategy = DefaultAbortStrategy
	}
	if out.Metrics == nil {
		out.Metrics = NoopMetricsCollector{}
	}
	return &out
}
