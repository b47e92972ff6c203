package kmeans

import "github.com/x448/float16"

// NewFromFloat16 creates an engine from IEEE 754 half-precision samples,
// given as their raw bit patterns. Values are widened to T; the conversion is
// exact for both float32 and float64.
func NewFromFloat16[T Primitive](bits []uint16, sampleCount, dims int, optFns ...Option) (*KMeans[T], error) {
	if dims > 0 && sampleCount > 0 && len(bits) != sampleCount*dims {
		return nil, &ErrDimensionMismatch{Expected: sampleCount * dims, Actual: len(bits)}
	}

	samples := make([]T, len(bits))
	for i, b := range bits {
		samples[i] = T(float16.Frombits(b).Float32())
	}
	return New(samples, sampleCount, dims, optFns...)
}
