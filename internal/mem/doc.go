// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned float buffers for the lane kernels. A 64-byte
// boundary holds one full lane block of float64 (and two of float32), so a
// lane-padded row never straddles the start of a block.
package mem
