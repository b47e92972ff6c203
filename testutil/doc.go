// Package testutil provides testing utilities for the clustering engine.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating seeded sample sets and computing
// brute-force ground truth for assignments.
//
// # Random Sample Generation
//
//	rng := testutil.NewRNG(seed)
//	samples := testutil.UniformSamples[float32](rng, n, dims)    // uniform [0, 1)
//	samples, centers := testutil.Blobs[float64](rng, n, dims, k, 0.05)
//
// # Ground Truth
//
//	assign, dists, sum := testutil.BruteForceAssign(samples, centroids, dims)
package testutil
