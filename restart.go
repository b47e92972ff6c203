package kmeans

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/wzh4464/kmeans/internal/resource"
)

// Job describes one clustering run for RunBest.
type Job struct {
	Algorithm     Algorithm
	K             int
	MaxIterations int
	Init          InitStrategy
	// BatchSize is used by Minibatch jobs only.
	BatchSize int
}

// RestartOptions bounds the concurrency of RunBest.
type RestartOptions struct {
	// Restarts is the number of independent runs. Must be positive.
	Restarts int

	// Workers is the maximum number of runs executing at once.
	// If 0, defaults to 1.
	Workers int

	// MemoryLimitBytes caps the combined working sets of concurrently
	// executing runs. If 0, no limit is enforced.
	MemoryLimitBytes int64
}

// RunBest executes job opts.Restarts times and returns the State with the
// lowest distance sum; ties go to the earliest restart.
//
// Every restart gets its own State and its own random generator, seeded in
// order from cfg's generator before any restart starts, so the result is
// deterministic for a deterministic cfg regardless of scheduling. The
// InitDone and IterationDone callbacks are not invoked for restarts. Logger
// and Metrics are shared and must be safe for concurrent use (the ones in
// this package are).
//
// ctx only gates the start of each restart; a restart that has begun runs to
// completion.
func (km *KMeans[T]) RunBest(ctx context.Context, job Job, cfg *Config[T], opts RestartOptions) (*State[T], error) {
	if opts.Restarts <= 0 {
		return nil, ErrInvalidRestarts
	}
	if err := km.validateK(job.K); err != nil {
		return nil, err
	}

	base := cfg.withDefaults()
	cfgs := make([]*Config[T], opts.Restarts)
	for i := range cfgs {
		c := *base
		c.Rand = rand.New(rand.NewPCG(base.Rand.Uint64(), base.Rand.Uint64()))
		c.InitDone = nil
		c.IterationDone = nil
		cfgs[i] = &c
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: opts.MemoryLimitBytes,
		MaxWorkers:       int64(opts.Workers),
	})
	need := stateBytes[T](km.SampleCount(), paddedDims(km.Dims()), job.K)
	logger := km.runLogger(base).WithAlgorithm(job.Algorithm).WithK(job.K)
	logger.DebugContext(ctx, "restarts scheduled",
		"restarts", opts.Restarts,
		"workers", rc.MaxWorkers(),
		"memory_limit", rc.MemoryLimit(),
		"state_bytes", need,
	)

	results := make([]*State[T], opts.Restarts)
	g, gctx := errgroup.WithContext(ctx)
	for i := range cfgs {
		g.Go(func() error {
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			if err := rc.AcquireMemory(gctx, need); err != nil {
				return fmt.Errorf("restart %d: %w", i, err)
			}
			defer rc.ReleaseMemory(need)
			logger.DebugContext(gctx, "restart started",
				"restart", i,
				"memory_in_use", rc.MemoryUsage(),
			)

			s, err := km.runJob(gctx, job, cfgs[i])
			if err != nil {
				return fmt.Errorf("restart %d: %w", i, err)
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, s := range results[1:] {
		if s.distSum < best.distSum {
			best = s
		}
	}
	logger.DebugContext(ctx, "restarts completed",
		"restarts", opts.Restarts,
		"distsum", float64(best.distSum),
	)
	return best, nil
}

func (km *KMeans[T]) runJob(ctx context.Context, job Job, cfg *Config[T]) (*State[T], error) {
	switch job.Algorithm {
	case Lloyd:
		return km.runLloyd(ctx, job.K, job.MaxIterations, job.Init, cfg)
	case Minibatch:
		return km.runMinibatch(ctx, job.BatchSize, job.K, job.MaxIterations, job.Init, cfg)
	default:
		return nil, fmt.Errorf("kmeans: unknown algorithm %d", uint8(job.Algorithm))
	}
}
