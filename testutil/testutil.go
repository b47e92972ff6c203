package testutil

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Float matches the element types the engine clusters.
type Float interface {
	~float32 | ~float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Rand returns a fresh generator seeded from r, for code that wants its own
// *rand.Rand.
func (r *RNG) Rand() *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rand.New(rand.NewPCG(r.rand.Uint64(), r.rand.Uint64()))
}

// UniformSamples generates n*dims row-major values in range [0, 1).
func UniformSamples[T Float](r *RNG, n, dims int) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, n*dims)
	for i := range out {
		out[i] = T(r.rand.Float64())
	}
	return out
}

// Blobs generates n samples around k well separated centers.
// Sample i belongs to center i%k; each coordinate gets Gaussian noise with
// standard deviation spread. Centers lie on a grid with unit spacing scaled
// by 10, so spreads well below 1 give clusters k-means separates reliably.
func Blobs[T Float](r *RNG, n, dims, k int, spread float64) (samples, centers []T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers = make([]T, k*dims)
	for c := range k {
		for d := range dims {
			// Spread the centers along every axis by their index so no two
			// coincide, with a random offset per axis.
			centers[c*dims+d] = T(10*float64(c) + r.rand.Float64())
		}
	}

	samples = make([]T, n*dims)
	for i := range n {
		c := i % k
		for d := range dims {
			samples[i*dims+d] = centers[c*dims+d] + T(r.rand.NormFloat64()*spread)
		}
	}
	return samples, centers
}

// BruteForceAssign computes, for every sample, the nearest centroid and the
// squared distance to it in float64, and returns the sum of those distances.
// Ties go to the lowest centroid index.
func BruteForceAssign[T Float](samples, centroids []T, dims int) (assign []int, dists []float64, sum float64) {
	n := len(samples) / dims
	k := len(centroids) / dims
	assign = make([]int, n)
	dists = make([]float64, n)

	for i := range n {
		best, bestDist := -1, math.Inf(1)
		for c := range k {
			if d := SquaredL2(samples[i*dims:(i+1)*dims], centroids[c*dims:(c+1)*dims]); d < bestDist {
				best, bestDist = c, d
			}
		}
		assign[i] = best
		dists[i] = bestDist
		sum += bestDist
	}
	return assign, dists, sum
}

// SquaredL2 is a plain float64 reference implementation of the squared
// Euclidean distance.
func SquaredL2[T Float](a, b []T) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// ContainsRow reports whether row appears verbatim among the rows of samples.
func ContainsRow[T Float](samples []T, dims int, row []T) bool {
	for i := 0; i+dims <= len(samples); i += dims {
		match := true
		for d := range dims {
			if samples[i+d] != row[d] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
