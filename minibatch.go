package kmeans

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/wzh4464/kmeans/internal/mem"
	"github.com/wzh4464/kmeans/internal/simd"
)

// RunMinibatch clusters the samples into k clusters with minibatch k-means.
//
// Every iteration draws batchSize samples uniformly with replacement,
// assigns them to their nearest centroids and moves each touched centroid
// toward the mean of its batch samples. The step size is the centroid's batch
// count divided by its accumulated count, so each centroid tracks the running
// mean of every sample it has been assigned so far. When batchSize is at
// least the sample count, the batch is the whole sample set in order and an
// iteration equals one Lloyd update.
//
// The objective passed to the abort strategy and IterationDone is the batch
// distance sum scaled to the full sample count; it is an estimate and is not
// monotonic. The returned State is refreshed with a full assignment pass.
func (km *KMeans[T]) RunMinibatch(batchSize, k, maxIterations int, init InitStrategy, cfg *Config[T]) (*State[T], error) {
	return km.runMinibatch(context.Background(), batchSize, k, maxIterations, init, cfg.withDefaults())
}

func (km *KMeans[T]) runMinibatch(ctx context.Context, batchSize, k, maxIterations int, init InitStrategy, cfg *Config[T]) (*State[T], error) {
	if batchSize <= 0 {
		return nil, km.newRun(Minibatch, k, cfg).fail(ctx, ErrInvalidBatchSize)
	}

	r, s, err := km.begin(ctx, Minibatch, k, maxIterations, init, cfg)
	if err != nil {
		return nil, err
	}

	n := km.SampleCount()
	full := batchSize >= n
	batch := make([]int, min(batchSize, n))
	if full {
		for i := range batch {
			batch[i] = i
		}
	}

	u := &onlineUpdate[T]{
		sums:    mem.Alloc[T](k * s.centroids.Stride()),
		counts:  make([]int, k),
		touched: roaring.New(),
	}
	abort := cfg.AbortStrategy.NewEvaluator()
	scale := float64(n) / float64(len(batch))

	for it := 1; it <= maxIterations; it++ {
		started := time.Now()

		if !full {
			for j := range batch {
				batch[j] = cfg.Rand.IntN(n)
			}
		}
		batchSum := km.assignBatch(s, batch)
		km.updateOnline(s, batch, u)

		estimate := batchSum * scale
		r.iterationDone(ctx, s, it, estimate, started)
		if abort.Next(estimate) {
			s.stop = StopAborted
			break
		}
	}

	return km.finish(ctx, r, s), nil
}

// onlineUpdate is the scratch space of one minibatch run.
type onlineUpdate[T Primitive] struct {
	sums    []T   // per-centroid padded sums of the current batch
	counts  []int // per-centroid sample counts of the current batch
	touched *roaring.Bitmap
}

// updateOnline folds one assigned batch into the centroids. Centroids no
// batch sample was assigned to are left untouched.
func (km *KMeans[T]) updateOnline(s *State[T], batch []int, u *onlineUpdate[T]) {
	stride := s.centroids.Stride()
	u.touched.Clear()

	for _, i := range batch {
		c := s.assignments[i]
		simd.AddInPlace(u.sums[c*stride:(c+1)*stride], km.samples.lanes(i))
		u.counts[c]++
		u.touched.Add(uint32(c))
	}

	it := u.touched.Iterator()
	for it.HasNext() {
		c := int(it.Next())
		bc := u.counts[c]
		s.counts[c] += bc

		mean := u.sums[c*stride : (c+1)*stride]
		simd.ScaleInPlace(mean, 1/T(bc))
		simd.MoveToward(s.centroids.lanes(c), mean, T(bc)/T(s.counts[c]))

		clear(mean)
		u.counts[c] = 0
	}
}
