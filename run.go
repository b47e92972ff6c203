package kmeans

import (
	"context"
	"time"
)

// run holds what one optimizer invocation needs besides the State.
type run[T Primitive] struct {
	cfg       *Config[T]
	logger    *Logger
	algorithm Algorithm
	start     time.Time
}

func (km *KMeans[T]) newRun(algorithm Algorithm, k int, cfg *Config[T]) *run[T] {
	return &run[T]{
		cfg:       cfg,
		logger:    km.runLogger(cfg).WithAlgorithm(algorithm).WithK(k),
		algorithm: algorithm,
		start:     time.Now(),
	}
}

// begin validates the arguments, allocates a fresh State and runs the
// initializer.
func (km *KMeans[T]) begin(ctx context.Context, algorithm Algorithm, k, maxIterations int, init InitStrategy, cfg *Config[T]) (*run[T], *State[T], error) {
	r := km.newRun(algorithm, k, cfg)

	if maxIterations < 0 {
		return r, nil, r.fail(ctx, ErrInvalidIterations)
	}
	if err := km.validateK(k); err != nil {
		return r, nil, r.fail(ctx, err)
	}

	s := newState[T](km.SampleCount(), km.Dims(), k)

	initStart := time.Now()
	err := km.Initialize(init, s, cfg)
	elapsed := time.Since(initStart)
	cfg.Metrics.RecordInit(init, elapsed, err)
	r.logger.LogInit(ctx, init, elapsed, err)
	if err != nil {
		return r, nil, r.fail(ctx, err)
	}

	if cfg.InitDone != nil {
		cfg.InitDone(s)
	}
	if maxIterations > 0 {
		s.stop = StopBudget
	}
	return r, s, nil
}

// iterationDone reports a completed iteration to metrics, logs and the
// callback.
func (r *run[T]) iterationDone(ctx context.Context, s *State[T], iteration int, distSum float64, started time.Time) {
	s.iterations = iteration
	r.cfg.Metrics.RecordIteration(iteration, distSum, time.Since(started))
	r.logger.LogIteration(ctx, iteration, distSum, s.empty.GetCardinality())
	if r.cfg.IterationDone != nil {
		r.cfg.IterationDone(s, iteration, T(distSum))
	}
}

// finish makes assignments, distances and the distance sum consistent with
// the final centroids and records the run. Lloyd counts follow the final
// assignments too.
func (km *KMeans[T]) finish(ctx context.Context, r *run[T], s *State[T]) *State[T] {
	km.UpdateAssignments(s, AllCentroids)
	if r.algorithm == Lloyd {
		s.recount()
	}
	r.cfg.Metrics.RecordRun(r.algorithm, s.iterations, time.Since(r.start), nil)
	r.logger.LogRun(ctx, s.iterations, float64(s.distSum), s.stop, nil)
	return s
}

func (r *run[T]) fail(ctx context.Context, err error) error {
	r.cfg.Metrics.RecordRun(r.algorithm, 0, time.Since(r.start), err)
	r.logger.LogRun(ctx, 0, 0, StopInitOnly, err)
	return err
}
