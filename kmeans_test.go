package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wzh4464/kmeans/internal/mem"
	"github.com/wzh4464/kmeans/internal/simd"
)

func mustNew[T Primitive](t testing.TB, samples []T, n, dims int) *KMeans[T] {
	t.Helper()
	km, err := New(samples, n, dims)
	require.NoError(t, err)
	return km
}

func TestNew(t *testing.T) {
	samples := []float32{1, 2, 3, 4, 5, 6}
	km := mustNew(t, samples, 2, 3)

	assert.Equal(t, 2, km.SampleCount())
	assert.Equal(t, 3, km.Dims())
	assert.Equal(t, []float32{1, 2, 3}, km.Samples().Row(0))
	assert.Equal(t, []float32{4, 5, 6}, km.Samples().Row(1))

	// The engine keeps its own copy.
	samples[0] = 99
	assert.Equal(t, float32(1), km.Samples().Row(0)[0])
}

func TestSamplesAreImmutable(t *testing.T) {
	km := mustNew(t, []float64{0, 0, 10, 10}, 2, 2)
	view := km.Samples()

	row := view.Row(0)
	row[0], row[1] = 99, 99
	flat := view.Flat()
	flat[2] = -1

	assert.Equal(t, []float64{0, 0}, km.Samples().Row(0))
	assert.Equal(t, []float64{0, 0, 10, 10}, km.Samples().Flat())
	assert.Equal(t, 2, view.Rows())
	assert.Equal(t, 2, view.Dims())
	assert.Equal(t, simd.Lanes, view.Stride())

	// Runs see the original values too.
	s, err := km.RunLloyd(2, 5, Precomputed, &Config[float64]{Centroids: []float64{0, 0, 10, 10}})
	require.NoError(t, err)
	assert.Zero(t, s.DistSum())
}

func TestNew_Errors(t *testing.T) {
	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := New([]float64{1}, 1, 0)
		var target *ErrInvalidDimension
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 0, target.Dimension)
	})

	t.Run("NoSamples", func(t *testing.T) {
		_, err := New([]float64{}, 0, 2)
		assert.ErrorIs(t, err, ErrNoSamples)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := New([]float64{1, 2, 3}, 2, 2)
		var target *ErrDimensionMismatch
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 4, target.Expected)
		assert.Equal(t, 3, target.Actual)
	})
}

func TestMatrixLayout(t *testing.T) {
	km := mustNew(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, 3)
	m := km.samples

	assert.Equal(t, simd.Lanes, m.Stride())
	assert.True(t, mem.IsAligned(m.data))
	for i := range m.Rows() {
		row := m.lanes(i)
		require.Len(t, row, m.Stride())
		for _, pad := range row[m.Dims():] {
			assert.Zero(t, pad)
		}
		assert.Equal(t, m.Dims(), cap(m.Row(i)))
	}

	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, m.Flat())
}

func TestMatrixSetRow(t *testing.T) {
	m := newMatrix[float32](2, 2)
	m.SetRow(1, []float32{7, 8, 9})
	assert.Equal(t, []float32{7, 8}, m.Row(1))
	assert.Zero(t, m.lanes(1)[2])

	c := m.Clone()
	m.SetRow(1, []float32{0, 0})
	assert.Equal(t, []float32{7, 8}, c.Row(1))

	assert.Panics(t, func() { m.SetRow(0, []float32{1}) })
}

func TestPaddedDims(t *testing.T) {
	tests := []struct{ dims, want int }{
		{1, simd.Lanes},
		{simd.Lanes, simd.Lanes},
		{simd.Lanes + 1, 2 * simd.Lanes},
		{100, 104},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, paddedDims(tt.dims), "dims=%d", tt.dims)
	}
}

func TestNewState(t *testing.T) {
	km := mustNew(t, []float32{0, 1, 2}, 3, 1)

	s, err := km.NewState(2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.K())
	assert.Equal(t, 2, s.Centroids().Rows())
	assert.Len(t, s.Assignments(), 3)
	assert.Len(t, s.Counts(), 2)
	for i := range s.Distances() {
		assert.Equal(t, Unassigned, s.Assignments()[i])
		assert.True(t, s.Distances()[i] > 1e30)
	}

	_, err = km.NewState(0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = km.NewState(4)
	var tooMany *ErrTooManyClusters
	require.ErrorAs(t, err, &tooMany)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestNewFromFloat16(t *testing.T) {
	// 1.0, 2.0, 0.5, -1.0
	bits := []uint16{0x3C00, 0x4000, 0x3800, 0xBC00}

	km, err := NewFromFloat16[float32](bits, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, km.Samples().Row(0))
	assert.Equal(t, []float32{0.5, -1}, km.Samples().Row(1))

	km64, err := NewFromFloat16[float64](bits, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 0.5, -1}, km64.Samples().Flat())

	_, err = NewFromFloat16[float32](bits, 3, 2)
	var target *ErrDimensionMismatch
	assert.ErrorAs(t, err, &target)
}

func TestStateBytes(t *testing.T) {
	f32 := stateBytes[float32](100, 8, 4)
	f64 := stateBytes[float64](100, 8, 4)
	assert.Greater(t, f64, f32)
	assert.Equal(t, int64(2*4*8*4+100*(4+8)+4*8), f32)
}
