package kmeans

import (
	"context"

	"github.com/wzh4464/kmeans/internal/simd"
)

// Primitive is the set of element types the engine clusters.
type Primitive interface {
	~float32 | ~float64
}

// KMeans is a clustering engine over an immutable sample set.
//
// A KMeans value is safe for concurrent use: every run allocates its own
// State and only reads the samples.
type KMeans[T Primitive] struct {
	samples *Matrix[T]
	logger  *Logger
}

// New creates an engine from sampleCount rows of dims values each, stored
// row-major in samples. The values are copied into an aligned, lane-padded
// buffer; samples may be reused by the caller afterwards.
func New[T Primitive](samples []T, sampleCount, dims int, optFns ...Option) (*KMeans[T], error) {
	if dims <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dims}
	}
	if sampleCount <= 0 {
		return nil, ErrNoSamples
	}
	if len(samples) != sampleCount*dims {
		return nil, &ErrDimensionMismatch{Expected: sampleCount * dims, Actual: len(samples)}
	}

	o := options{}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}

	m := newMatrix[T](sampleCount, dims)
	for i := range sampleCount {
		m.SetRow(i, samples[i*dims:(i+1)*dims])
	}

	km := &KMeans[T]{
		samples: m,
		logger:  o.logger.WithCount(sampleCount).WithDimension(dims),
	}
	km.logger.DebugContext(context.Background(), "engine created",
		"isa", simd.ActiveISA().String(),
		"accumulators", simd.AccumulatorWidth(),
		"stride", m.Stride(),
	)
	return km, nil
}

// Samples returns a read-only view of the sample matrix.
func (km *KMeans[T]) Samples() SampleView[T] { return SampleView[T]{m: km.samples} }

// SampleCount returns the number of samples.
func (km *KMeans[T]) SampleCount() int { return km.samples.Rows() }

// Dims returns the sample dimensionality.
func (km *KMeans[T]) Dims() int { return km.samples.Dims() }

// NewState allocates a fresh run state for k clusters.
//
// Use it together with Initialize or UpdateAssignments to drive the building
// blocks by hand; RunLloyd and RunMinibatch allocate their own.
func (km *KMeans[T]) NewState(k int) (*State[T], error) {
	if err := km.validateK(k); err != nil {
		return nil, err
	}
	return newState[T](km.SampleCount(), km.Dims(), k), nil
}

func (km *KMeans[T]) validateK(k int) error {
	if k <= 0 {
		return ErrInvalidK
	}
	if k > km.SampleCount() {
		return &ErrTooManyClusters{K: k, Samples: km.SampleCount()}
	}
	return nil
}

// runLogger picks the logger for one run.
func (km *KMeans[T]) runLogger(cfg *Config[T]) *Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return km.logger
}
