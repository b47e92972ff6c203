package kmeans

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// InitStrategy selects how the initial centroids are placed.
type InitStrategy uint8

const (
	// RandomSample copies k samples drawn uniformly with replacement.
	RandomSample InitStrategy = iota
	// KMeansPlusPlus draws each next centroid with probability proportional
	// to its squared distance from the centroids chosen so far.
	KMeansPlusPlus
	// Precomputed copies Config.Centroids.
	Precomputed
)

func (s InitStrategy) String() string {
	switch s {
	case RandomSample:
		return "random-sample"
	case KMeansPlusPlus:
		return "kmeans++"
	case Precomputed:
		return "precomputed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Initialize places the centroids of s with the given strategy.
func (km *KMeans[T]) Initialize(strategy InitStrategy, s *State[T], cfg *Config[T]) error {
	switch strategy {
	case RandomSample:
		return km.InitRandomSample(s, cfg)
	case KMeansPlusPlus:
		return km.InitKMeansPlusPlus(s, cfg)
	case Precomputed:
		return km.InitPrecomputed(s, cfg)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownInitStrategy, uint8(strategy))
	}
}

// InitRandomSample sets every centroid to a sample drawn uniformly at random,
// with replacement. Duplicate centroids are possible and kept.
func (km *KMeans[T]) InitRandomSample(s *State[T], cfg *Config[T]) error {
	cfg = cfg.withDefaults()
	s.reset()

	n := km.SampleCount()
	for c := range s.k {
		s.centroids.SetRow(c, km.samples.Row(cfg.Rand.IntN(n)))
	}
	return nil
}

// InitKMeansPlusPlus places centroids with the k-means++ scheme: the first one
// uniformly, every further one with probability proportional to a sample's
// squared distance from its nearest already placed centroid.
//
// On return the distance vector reflects centroids 0..k-2; the optimizer's
// first full pass brings it up to date.
func (km *KMeans[T]) InitKMeansPlusPlus(s *State[T], cfg *Config[T]) error {
	cfg = cfg.withDefaults()
	s.reset()

	s.centroids.SetRow(0, km.samples.Row(cfg.Rand.IntN(km.SampleCount())))
	for c := 1; c < s.k; c++ {
		km.UpdateAssignments(s, c-1)
		idx := weightedIndex(s.distances, cfg.Rand)
		s.centroids.SetRow(c, km.samples.Row(idx))
	}
	return nil
}

// InitPrecomputed copies Config.Centroids, k rows of Dims() values.
func (km *KMeans[T]) InitPrecomputed(s *State[T], cfg *Config[T]) error {
	cfg = cfg.withDefaults()
	dims := km.Dims()
	if len(cfg.Centroids) != s.k*dims {
		return &ErrDimensionMismatch{Expected: s.k * dims, Actual: len(cfg.Centroids)}
	}
	s.reset()
	for c := range s.k {
		s.centroids.SetRow(c, cfg.Centroids[c*dims:(c+1)*dims])
	}
	return nil
}

// weightedIndex draws an index with probability proportional to its weight.
//
// Zero-weight entries are never drawn unless every weight is zero, in which
// case the draw is uniform. If some weights are +Inf the draw is uniform over
// those entries. A negative or NaN weight means the distance vector is
// corrupt and panics.
func weightedIndex[T Primitive](weights []T, r *rand.Rand) int {
	var total, peak float64
	infinite := 0
	for i, w := range weights {
		f := float64(w)
		if f < 0 || math.IsNaN(f) {
			panic(fmt.Sprintf("kmeans: invalid sampling weight %v at index %d", f, i))
		}
		if math.IsInf(f, 1) {
			infinite++
		}
		total += f
		peak = max(peak, f)
	}
	switch {
	case total == 0:
		return r.IntN(len(weights))
	case infinite > 0:
		return infiniteIndex(weights, infinite, r)
	case math.IsInf(total, 1):
		// Finite weights summed past the float64 range; scale them down.
		return cumulativeIndex(weights, 1/peak, r)
	default:
		return cumulativeIndex(weights, 1, r)
	}
}

// cumulativeIndex scans the running sum of weights*scale for a uniform
// target. Zero weights are skipped.
func cumulativeIndex[T Primitive](weights []T, scale float64, r *rand.Rand) int {
	var total float64
	for _, w := range weights {
		total += float64(w) * scale
	}

	target := r.Float64() * total
	var acc float64
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		acc += float64(w) * scale
		last = i
		if target < acc {
			return i
		}
	}
	// Rounding left target at or above the final running sum.
	return last
}

// infiniteIndex draws uniformly among the n entries of weights that are +Inf.
func infiniteIndex[T Primitive](weights []T, n int, r *rand.Rand) int {
	pick := r.IntN(n)
	for i, w := range weights {
		if math.IsInf(float64(w), 1) {
			if pick == 0 {
				return i
			}
			pick--
		}
	}
	panic("kmeans: infinite weight count changed during draw")
}
