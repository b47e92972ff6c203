package kmeans

import (
	"context"
	"time"

	"github.com/wzh4464/kmeans/internal/mem"
	"github.com/wzh4464/kmeans/internal/simd"
)

// RunLloyd clusters the samples into k clusters with Lloyd's algorithm.
//
// After init places the centroids, every iteration assigns each sample to its
// nearest centroid and moves each centroid to the mean of its samples. A
// centroid that lost all its samples keeps its position. The loop ends when
// an assignment pass changes nothing, when cfg.AbortStrategy says so, or
// after maxIterations iterations; maxIterations == 0 runs only the
// initializer.
//
// The objective passed to the abort strategy and IterationDone is the
// distance sum of the iteration's assignment pass, which never increases
// from one iteration to the next.
func (km *KMeans[T]) RunLloyd(k, maxIterations int, init InitStrategy, cfg *Config[T]) (*State[T], error) {
	return km.runLloyd(context.Background(), k, maxIterations, init, cfg.withDefaults())
}

func (km *KMeans[T]) runLloyd(ctx context.Context, k, maxIterations int, init InitStrategy, cfg *Config[T]) (*State[T], error) {
	r, s, err := km.begin(ctx, Lloyd, k, maxIterations, init, cfg)
	if err != nil {
		return nil, err
	}

	sums := mem.Alloc[T](k * s.centroids.Stride())
	abort := cfg.AbortStrategy.NewEvaluator()

	for it := 1; it <= maxIterations; it++ {
		started := time.Now()

		km.UpdateAssignments(s, AllCentroids)
		if it > 1 && s.changed == 0 {
			// Means of unchanged clusters are the current centroids.
			s.stop = StopConverged
			break
		}
		km.updateMeans(s, sums)

		distSum := float64(s.distSum)
		r.iterationDone(ctx, s, it, distSum, started)
		if abort.Next(distSum) {
			s.stop = StopAborted
			break
		}
	}

	return km.finish(ctx, r, s), nil
}

// updateMeans moves every centroid to the mean of the samples assigned to it
// and refreshes the point counts. sums is k padded rows of scratch space.
func (km *KMeans[T]) updateMeans(s *State[T], sums []T) {
	stride := s.centroids.Stride()
	clear(sums)
	clear(s.counts)
	s.empty.Clear()

	for i, c := range s.assignments {
		simd.AddInPlace(sums[c*stride:(c+1)*stride], km.samples.lanes(i))
		s.counts[c]++
	}

	for c := range s.k {
		if s.counts[c] == 0 {
			s.empty.Add(uint32(c))
			continue
		}
		mean := sums[c*stride : (c+1)*stride]
		simd.ScaleInPlace(mean, 1/T(s.counts[c]))
		copy(s.centroids.lanes(c), mean)
	}
}
