package kmeans

import (
	"math"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"
)

// Unassigned marks a sample that no full assignment pass has visited yet.
const Unassigned = -1

// Algorithm identifies an optimizer.
type Algorithm uint8

const (
	// Lloyd is full-batch assign-then-average iteration.
	Lloyd Algorithm = iota
	// Minibatch is stochastic online-mean iteration over random batches.
	Minibatch
)

func (a Algorithm) String() string {
	switch a {
	case Lloyd:
		return "lloyd"
	case Minibatch:
		return "minibatch"
	default:
		return "unknown"
	}
}

// StopReason tells why an optimizer left its loop.
type StopReason uint8

const (
	// StopInitOnly means the iteration budget was zero.
	StopInitOnly StopReason = iota
	// StopBudget means every allowed iteration ran.
	StopBudget
	// StopConverged means an assignment pass changed nothing.
	StopConverged
	// StopAborted means the abort strategy asked to stop.
	StopAborted
)

func (r StopReason) String() string {
	switch r {
	case StopInitOnly:
		return "init-only"
	case StopBudget:
		return "budget"
	case StopConverged:
		return "converged"
	case StopAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// State is the mutable working set of one clustering run: centroids,
// per-sample assignments and distances, the distance sum and per-centroid
// point counts.
//
// A State belongs to exactly one run and is not safe for concurrent use.
// After RunLloyd or RunMinibatch return it, assignments, distances and the
// distance sum all refer to the returned centroids.
type State[T Primitive] struct {
	k           int
	centroids   *Matrix[T]
	assignments []int
	distances   []T
	distSum     T
	counts      []int

	// changed is the number of samples that switched centroid in the last
	// full assignment pass.
	changed    int
	iterations int
	stop       StopReason
	empty      *roaring.Bitmap
}

func newState[T Primitive](sampleCount, dims, k int) *State[T] {
	s := &State[T]{
		k:           k,
		centroids:   newMatrix[T](k, dims),
		assignments: make([]int, sampleCount),
		distances:   make([]T, sampleCount),
		counts:      make([]int, k),
		empty:       roaring.New(),
	}
	s.reset()
	return s
}

// reset forgets every assignment and distance, keeping the centroids.
func (s *State[T]) reset() {
	inf := T(math.Inf(1))
	for i := range s.distances {
		s.distances[i] = inf
		s.assignments[i] = Unassigned
	}
	s.distSum = inf
	clear(s.counts)
	s.changed = 0
	s.iterations = 0
	s.stop = StopInitOnly
	s.empty.Clear()
}

// K returns the number of clusters.
func (s *State[T]) K() int { return s.k }

// Centroids returns the centroid matrix.
func (s *State[T]) Centroids() *Matrix[T] { return s.centroids }

// Assignments returns, per sample, the index of its nearest centroid.
func (s *State[T]) Assignments() []int { return s.assignments }

// Distances returns, per sample, the squared distance to its nearest centroid.
func (s *State[T]) Distances() []T { return s.distances }

// DistSum returns the total within-cluster squared distance.
func (s *State[T]) DistSum() T { return s.distSum }

// Counts returns the per-centroid point counts. Lloyd reports the number of
// samples in Assignments per centroid; minibatch reports the accumulated
// batch counts that drive its learning rate.
func (s *State[T]) Counts() []int { return s.counts }

// Iterations returns the number of completed optimizer iterations.
func (s *State[T]) Iterations() int { return s.iterations }

// StopReason returns why the optimizer stopped.
func (s *State[T]) StopReason() StopReason { return s.stop }

// Changed returns how many samples switched centroid in the last full
// assignment pass.
func (s *State[T]) Changed() int { return s.changed }

// EmptyClusters returns, for Lloyd runs, the centroids no sample is assigned
// to, in ascending order.
func (s *State[T]) EmptyClusters() []uint32 { return s.empty.ToArray() }

// recount rebuilds counts and the empty-cluster set from the assignments.
func (s *State[T]) recount() {
	clear(s.counts)
	s.empty.Clear()
	for _, c := range s.assignments {
		s.counts[c]++
	}
	for c, n := range s.counts {
		if n == 0 {
			s.empty.Add(uint32(c))
		}
	}
}

// stateBytes estimates the heap footprint of one run over n samples:
// centroids plus scratch sums, and the per-sample vectors.
func stateBytes[T Primitive](n, stride, k int) int64 {
	var zero T
	elem := int64(unsafe.Sizeof(zero))
	rows := 2 * int64(k) * int64(stride) * elem
	perSample := int64(n) * (elem + int64(unsafe.Sizeof(int(0))))
	return rows + perSample + int64(k)*int64(unsafe.Sizeof(int(0)))
}
