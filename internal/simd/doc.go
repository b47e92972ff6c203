// Package simd provides lane-parallel float kernels for the clustering engine.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2 (8 accumulators)
//   - ARM64: NEON, SVE2 (4 accumulators)
//   - everything else: generic (4 accumulators)
//
// Runtime CPU feature detection selects the accumulator width once per process.
// Set KMEANS_SIMD=generic|neon|sve2|avx2|avx512 to override the detected ISA.
//
// # Numerics
//
// Kernels accumulate lane-major into independent partial sums and reduce them
// horizontally at the end. Results are deterministic for a given accumulator
// width but may differ in the last ulp between widths.
//
// # Operations
//
//   - Distance: SquaredL2, SquaredL2Lanes
//   - Update: AddInPlace, ScaleInPlace, MoveToward
package simd
