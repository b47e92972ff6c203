package kmeans

import (
	"fmt"

	"github.com/wzh4464/kmeans/internal/mem"
	"github.com/wzh4464/kmeans/internal/simd"
)

// Matrix is a dense row-major matrix stored in one aligned buffer.
//
// Each row occupies Stride() elements: Dims() values followed by zero padding
// up to the next multiple of the kernel lane width. Padding never shows up in
// Row and contributes nothing to squared distances.
type Matrix[T Primitive] struct {
	data   []T
	rows   int
	dims   int
	stride int
}

// paddedDims rounds dims up to a whole number of lanes.
func paddedDims(dims int) int {
	return (dims + simd.Lanes - 1) / simd.Lanes * simd.Lanes
}

func newMatrix[T Primitive](rows, dims int) *Matrix[T] {
	stride := paddedDims(dims)
	return &Matrix[T]{
		data:   mem.Alloc[T](rows * stride),
		rows:   rows,
		dims:   dims,
		stride: stride,
	}
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Dims returns the number of values per row.
func (m *Matrix[T]) Dims() int { return m.dims }

// Stride returns the padded row length in elements.
func (m *Matrix[T]) Stride() int { return m.stride }

// Row returns the Dims() values of row i. The slice aliases the matrix and
// must be treated as read-only; use SetRow to modify centroids.
func (m *Matrix[T]) Row(i int) []T {
	o := i * m.stride
	return m.data[o : o+m.dims : o+m.dims]
}

// lanes returns row i including its padding.
func (m *Matrix[T]) lanes(i int) []T {
	o := i * m.stride
	return m.data[o : o+m.stride : o+m.stride]
}

// SetRow copies the first Dims() values of src into row i.
func (m *Matrix[T]) SetRow(i int, src []T) {
	if len(src) < m.dims {
		panic(fmt.Sprintf("kmeans: SetRow got %d values for %d dimensions", len(src), m.dims))
	}
	copy(m.Row(i), src)
}

// Flat returns a copy of the matrix without padding, rows*dims values long.
func (m *Matrix[T]) Flat() []T {
	out := make([]T, 0, m.rows*m.dims)
	for i := range m.rows {
		out = append(out, m.Row(i)...)
	}
	return out
}

// Clone returns a deep copy of m.
func (m *Matrix[T]) Clone() *Matrix[T] {
	c := newMatrix[T](m.rows, m.dims)
	copy(c.data, m.data)
	return c
}

// SampleView is a read-only view of an engine's sample matrix. Every
// accessor returns copies, so samples cannot change after New.
type SampleView[T Primitive] struct {
	m *Matrix[T]
}

// Rows returns the number of samples.
func (v SampleView[T]) Rows() int { return v.m.rows }

// Dims returns the number of values per sample.
func (v SampleView[T]) Dims() int { return v.m.dims }

// Stride returns the padded row length in elements.
func (v SampleView[T]) Stride() int { return v.m.stride }

// Row returns a copy of the Dims() values of sample i.
func (v SampleView[T]) Row(i int) []T {
	return append([]T(nil), v.m.Row(i)...)
}

// Flat returns a copy of all samples without padding.
func (v SampleView[T]) Flat() []T { return v.m.Flat() }
