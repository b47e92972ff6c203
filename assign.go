package kmeans

import (
	"fmt"

	"github.com/wzh4464/kmeans/internal/simd"
)

// AllCentroids selects the full assignment pass in UpdateAssignments.
const AllCentroids = -1

// UpdateAssignments runs the nearest-centroid kernel over every sample.
//
// With onlyCentroid == AllCentroids each sample is compared against all k
// centroids; ties go to the lowest centroid index. Otherwise only centroid
// onlyCentroid is considered, and a sample moves to it when it is strictly
// closer than the sample's current distance. This incremental form is what
// k-means++ uses while centroids are being placed one by one.
//
// Both modes recompute the distance sum. Any other onlyCentroid value panics.
func (km *KMeans[T]) UpdateAssignments(s *State[T], onlyCentroid int) {
	switch {
	case onlyCentroid == AllCentroids:
		km.assignAll(s)
	case onlyCentroid >= 0 && onlyCentroid < s.k:
		km.assignIncremental(s, onlyCentroid)
	default:
		panic(fmt.Sprintf("kmeans: centroid %d out of range [0,%d)", onlyCentroid, s.k))
	}
}

func (km *KMeans[T]) assignAll(s *State[T]) {
	var sum float64
	changed := 0
	for i := range km.samples.Rows() {
		best, dist := nearest(km.samples.lanes(i), s.centroids)
		if s.assignments[i] != best {
			s.assignments[i] = best
			changed++
		}
		s.distances[i] = dist
		sum += float64(dist)
	}
	s.distSum = T(sum)
	s.changed = changed
}

func (km *KMeans[T]) assignIncremental(s *State[T], c int) {
	centroid := s.centroids.lanes(c)
	var sum float64
	for i := range km.samples.Rows() {
		if d := simd.SquaredL2Lanes(km.samples.lanes(i), centroid); d < s.distances[i] {
			s.distances[i] = d
			s.assignments[i] = c
		}
		sum += float64(s.distances[i])
	}
	s.distSum = T(sum)
}

// assignBatch runs the full kernel over the listed samples only and returns
// the sum of their distances. Samples outside the batch keep stale entries,
// so s.distSum is left alone until the next full pass.
func (km *KMeans[T]) assignBatch(s *State[T], batch []int) float64 {
	var sum float64
	for _, i := range batch {
		best, dist := nearest(km.samples.lanes(i), s.centroids)
		s.assignments[i] = best
		s.distances[i] = dist
		sum += float64(dist)
	}
	return sum
}

// nearest returns the index of the centroid closest to row and the squared
// distance to it.
func nearest[T Primitive](row []T, centroids *Matrix[T]) (int, T) {
	best := 0
	bestDist := simd.SquaredL2Lanes(row, centroids.lanes(0))
	for c := 1; c < centroids.Rows(); c++ {
		if d := simd.SquaredL2Lanes(row, centroids.lanes(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}
