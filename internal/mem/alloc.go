package mem

import (
	"fmt"
	"unsafe"

	"github.com/wzh4464/kmeans/internal/simd"
)

// Alignment is the byte alignment of every buffer handed out by this package.
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Room to shift the start pointer up to Alignment-1 bytes.
	buf := make([]byte, size+Alignment)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// Alloc allocates a zeroed, 64-byte aligned slice of n elements.
//
// n must be a multiple of simd.Lanes; anything else is a programming error
// and panics. Alloc(0) returns nil.
func Alloc[T simd.Float](n int) []T {
	if n < 0 || n%simd.Lanes != 0 {
		panic(fmt.Sprintf("mem: size %d is not a multiple of %d lanes", n, simd.Lanes))
	}
	if n == 0 {
		return nil
	}

	var zero T
	byteSlice := AllocAligned(n * int(unsafe.Sizeof(zero)))

	// AllocAligned guarantees 64-byte alignment, which covers the 4 or 8
	// bytes required by the element type.
	ptr := unsafe.Pointer(&byteSlice[0]) //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*T)(ptr), n)     //nolint:gosec // unsafe is required for memory alignment
}

// AllocUninit allocates an aligned slice of n elements whose content is
// unspecified. Callers must overwrite every element before reading it.
//
// The Go runtime zeroes all allocations, so today this differs from Alloc only
// in contract.
func AllocUninit[T simd.Float](n int) []T {
	return Alloc[T](n)
}

// IsAligned reports whether s starts on an Alignment boundary.
// Empty slices are considered aligned.
func IsAligned[T any](s []T) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%Alignment == 0 //nolint:gosec // address inspection only
}
