package kmeans

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    iterations prometheus.Counter
//	    runs       prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordIteration(iteration int, distSum float64, d time.Duration) {
//	    p.iterations.Inc()
//	}
type MetricsCollector interface {
	// RecordInit is called after centroid initialization.
	RecordInit(strategy InitStrategy, duration time.Duration, err error)

	// RecordIteration is called after each optimizer iteration with the
	// objective observed in that iteration.
	RecordIteration(iteration int, distSum float64, duration time.Duration)

	// RecordRun is called once per run, after the final assignment pass.
	RecordRun(algorithm Algorithm, iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInit(InitStrategy, time.Duration, error)  {}
func (NoopMetricsCollector) RecordIteration(int, float64, time.Duration)    {}
func (NoopMetricsCollector) RecordRun(Algorithm, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// It is safe for concurrent use, so one collector may observe RunBest restarts.
type BasicMetricsCollector struct {
	InitCount          atomic.Int64
	InitErrors         atomic.Int64
	InitTotalNanos     atomic.Int64
	IterationCount     atomic.Int64
	IterationNanos     atomic.Int64
	RunCount           atomic.Int64
	RunErrors          atomic.Int64
	RunTotalNanos      atomic.Int64
	LloydRuns          atomic.Int64
	MinibatchRuns      atomic.Int64
	lastDistSumBits    atomic.Uint64
	lastDistSumPresent atomic.Bool
}

// RecordInit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInit(_ InitStrategy, duration time.Duration, err error) {
	b.InitCount.Add(1)
	b.InitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InitErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ int, distSum float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationNanos.Add(duration.Nanoseconds())
	b.lastDistSumBits.Store(math.Float64bits(distSum))
	b.lastDistSumPresent.Store(true)
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(algorithm Algorithm, _ int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
	switch algorithm {
	case Lloyd:
		b.LloydRuns.Add(1)
	case Minibatch:
		b.MinibatchRuns.Add(1)
	}
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	InitCount         int64
	InitErrors        int64
	InitAvgNanos      int64
	IterationCount    int64
	IterationAvgNanos int64
	RunCount          int64
	RunErrors         int64
	RunAvgNanos       int64
	LloydRuns         int64
	MinibatchRuns     int64
	// LastDistSum is the objective of the most recent iteration, if any.
	LastDistSum       float64
	HasIterations     bool
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		InitCount:      b.InitCount.Load(),
		InitErrors:     b.InitErrors.Load(),
		IterationCount: b.IterationCount.Load(),
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		LloydRuns:      b.LloydRuns.Load(),
		MinibatchRuns:  b.MinibatchRuns.Load(),
		HasIterations:  b.lastDistSumPresent.Load(),
	}
	if s.InitCount > 0 {
		s.InitAvgNanos = b.InitTotalNanos.Load() / s.InitCount
	}
	if s.IterationCount > 0 {
		s.IterationAvgNanos = b.IterationNanos.Load() / s.IterationCount
	}
	if s.RunCount > 0 {
		s.RunAvgNanos = b.RunTotalNanos.Load() / s.RunCount
	}
	if s.HasIterations {
		s.LastDistSum = math.Float64frombits(b.lastDistSumBits.Load())
	}
	return s
}
