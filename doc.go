// Package kmeans provides a lane-parallel k-means clustering engine for Go.
//
// An engine owns an immutable, lane-padded copy of N samples of D values.
// Each run allocates its own State (centroids, assignments, distances,
// distance sum and point counts), places initial centroids and refines
// them with one of two optimizers.
//
// # Quick Start
//
//	km, _ := kmeans.New(samples, n, dims)
//	state, _ := km.RunLloyd(k, 100, kmeans.KMeansPlusPlus, &kmeans.Config[float32]{Seed: 42})
//	fmt.Println(state.DistSum(), state.Centroids().Row(0), state.Assignments())
//
// # Initializers
//
//   - RandomSample: k samples drawn uniformly with replacement
//   - KMeansPlusPlus: distance-weighted seeding
//   - Precomputed: centroids supplied in Config.Centroids
//
// # Optimizers
//
//	// Full batch: exact means, non-increasing objective.
//	state, _ := km.RunLloyd(k, maxIter, kmeans.KMeansPlusPlus, cfg)
//
//	// Stochastic: random batches, online means with 1/count learning rate.
//	state, _ := km.RunMinibatch(batchSize, k, maxIter, kmeans.RandomSample, cfg)
//
//	// Independent restarts in parallel, lowest objective wins.
//	state, _ := km.RunBest(ctx, kmeans.Job{Algorithm: kmeans.Lloyd, K: k, MaxIterations: 50},
//	    cfg, kmeans.RestartOptions{Restarts: 8, Workers: 4})
//
// # Early Stopping
//
// Config.AbortStrategy sees the objective after each iteration. Built-ins are
// NoImprovement, NoImprovementForXIterations and Never; AbortFunc adapts any
// predicate over the objective history.
//
// # Determinism
//
// Runs are single-threaded. With a deterministic Config.Rand (or the default,
// seeded from Config.Seed) results are bit-for-bit reproducible on the same
// kernel width; see internal/simd for how that width is chosen.
//
// # Errors
//
// Malformed shapes and arguments are returned as errors (ErrInvalidK,
// *ErrDimensionMismatch, ...). Corrupt internal state, such as a negative
// k-means++ sampling weight, panics.
package kmeans
