// Package resource bounds the work that independent clustering runs may do
// at the same time.
//
// The Controller manages two resource types:
//
//   - Memory: bytes reserved for per-run working sets (centroids, distance
//     and assignment vectors, scratch sums)
//   - Workers: number of runs executing concurrently
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory waits until the budget has room:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(ctx, stateBytes); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(stateBytes)
//
// A request larger than the whole limit can never be satisfied and returns
// ErrMemoryLimitExceeded immediately.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
package resource
