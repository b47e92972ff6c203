package mem

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wzh4464/kmeans/internal/simd"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned(size)
		assert.Len(t, buf, size)

		ptr := unsafe.Pointer(&buf[0])
		addr := uintptr(ptr)
		assert.Equal(t, uintptr(0), addr%Alignment, "Address %d should be aligned to %d for size %d", addr, Alignment, size)
	}

	assert.Nil(t, AllocAligned(0))
	assert.Nil(t, AllocAligned(-1))
}

func TestAllocFloat32(t *testing.T) {
	for _, size := range []int{simd.Lanes, 2 * simd.Lanes, 128 * simd.Lanes} {
		buf := Alloc[float32](size)
		require.Len(t, buf, size)
		assert.True(t, IsAligned(buf), "size %d", size)
		for _, v := range buf {
			assert.Zero(t, v)
		}
	}
	assert.Nil(t, Alloc[float32](0))
}

func TestAllocFloat64(t *testing.T) {
	for _, size := range []int{simd.Lanes, 3 * simd.Lanes, 100 * simd.Lanes} {
		buf := Alloc[float64](size)
		require.Len(t, buf, size)
		assert.True(t, IsAligned(buf), "size %d", size)
	}
}

func TestAllocUninit(t *testing.T) {
	buf := AllocUninit[float64](4 * simd.Lanes)
	require.Len(t, buf, 4*simd.Lanes)
	assert.True(t, IsAligned(buf))

	// Writes must not spill over neighbouring allocations.
	for i := range buf {
		buf[i] = float64(i)
	}
	assert.Equal(t, float64(4*simd.Lanes-1), buf[len(buf)-1])
	assert.Equal(t, len(buf), cap(buf))
}

func TestAllocRejectsPartialLanes(t *testing.T) {
	for _, size := range []int{1, simd.Lanes - 1, simd.Lanes + 1, -simd.Lanes} {
		assert.Panics(t, func() { Alloc[float32](size) }, "size %d", size)
		assert.Panics(t, func() { AllocUninit[float64](size) }, "size %d", size)
	}
}

func TestIsAligned(t *testing.T) {
	buf := Alloc[float32](2 * simd.Lanes)
	assert.True(t, IsAligned(buf))
	assert.False(t, IsAligned(buf[1:]))
	assert.True(t, IsAligned([]float32(nil)))
}

func BenchmarkAllocAligned(b *testing.B) {
	sizes := []int{64, 256, 1024, 4096}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = AllocAligned(size)
			}
		})
	}
}

func BenchmarkAllocFloat64(b *testing.B) {
	sizes := []int{16, 64, 256, 1024}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Alloc[float64](size)
			}
		})
	}
}
