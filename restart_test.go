package kmeans

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wzh4464/kmeans/internal/resource"
	"github.com/wzh4464/kmeans/testutil"
)

func TestRunBest_PicksLowestRestart(t *testing.T) {
	rng := testutil.NewRNG(51)
	const n, dims, k, restarts = 300, 4, 6, 5
	km := mustNew(t, testutil.UniformSamples[float64](rng, n, dims), n, dims)

	job := Job{Algorithm: Lloyd, K: k, MaxIterations: 15, Init: RandomSample}
	best, err := km.RunBest(context.Background(), job, &Config[float64]{Seed: 8}, RestartOptions{
		Restarts: restarts,
		Workers:  3,
	})
	require.NoError(t, err)

	// Replay the restarts one by one with the generators RunBest derives.
	base := rand.New(rand.NewPCG(8, seedStream))
	var sums []float64
	for range restarts {
		r := rand.New(rand.NewPCG(base.Uint64(), base.Uint64()))
		s, err := km.RunLloyd(k, 15, RandomSample, &Config[float64]{Rand: r})
		require.NoError(t, err)
		sums = append(sums, s.DistSum())
	}

	assert.Equal(t, minOf(sums), best.DistSum())
}

func TestRunBest_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(52)
	const n, dims, k = 400, 6, 5
	samples, _ := testutil.Blobs[float32](rng, n, dims, k, 2)
	km := mustNew(t, samples, n, dims)

	job := Job{Algorithm: Minibatch, K: k, MaxIterations: 30, Init: KMeansPlusPlus, BatchSize: 32}
	run := func(workers int) []float32 {
		s, err := km.RunBest(context.Background(), job, &Config[float32]{Seed: 1}, RestartOptions{
			Restarts: 6,
			Workers:  workers,
		})
		require.NoError(t, err)
		return s.Centroids().Flat()
	}

	assert.Equal(t, run(1), run(4))
}

func TestRunBest_SharedMetrics(t *testing.T) {
	km := mustNew(t, fourCorners, 4, 2)
	metrics := &BasicMetricsCollector{}

	_, err := km.RunBest(context.Background(), Job{Algorithm: Lloyd, K: 2, MaxIterations: 5, Init: KMeansPlusPlus},
		&Config[float64]{Metrics: metrics}, RestartOptions{Restarts: 7, Workers: 7})
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(7), stats.RunCount)
	assert.Equal(t, int64(7), stats.LloydRuns)
	assert.Equal(t, int64(7), stats.InitCount)
}

func TestRunBest_LogsResourceUsage(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	km := mustNew(t, fourCorners, 4, 2)

	_, err := km.RunBest(context.Background(), Job{Algorithm: Lloyd, K: 2, MaxIterations: 5, Init: KMeansPlusPlus},
		&Config[float64]{Logger: logger}, RestartOptions{Restarts: 3, Workers: 2, MemoryLimitBytes: 1 << 20})
	require.NoError(t, err)

	records := decodeRecords(t, &buf)
	scheduled := findRecord(records, "restarts scheduled")
	require.NotNil(t, scheduled)
	assert.EqualValues(t, 2, scheduled["workers"])
	assert.EqualValues(t, 1<<20, scheduled["memory_limit"])
	assert.EqualValues(t, stateBytes[float64](4, paddedDims(2), 2), scheduled["state_bytes"])

	need := stateBytes[float64](4, paddedDims(2), 2)
	started := 0
	for _, r := range records {
		if r["msg"] != "restart started" {
			continue
		}
		started++
		inUse := int64(r["memory_in_use"].(float64))
		assert.GreaterOrEqual(t, inUse, need)
		assert.LessOrEqual(t, inUse, 2*need)
	}
	assert.Equal(t, 3, started)
}

func TestRunBest_Errors(t *testing.T) {
	km := mustNew(t, fourCorners, 4, 2)
	job := Job{Algorithm: Lloyd, K: 2, MaxIterations: 5, Init: RandomSample}

	t.Run("Restarts", func(t *testing.T) {
		_, err := km.RunBest(context.Background(), job, nil, RestartOptions{})
		require.ErrorIs(t, err, ErrInvalidRestarts)
	})

	t.Run("K", func(t *testing.T) {
		bad := job
		bad.K = 9
		_, err := km.RunBest(context.Background(), bad, nil, RestartOptions{Restarts: 2})
		require.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		_, err := km.RunBest(context.Background(), job, nil, RestartOptions{Restarts: 2, MemoryLimitBytes: 1})
		require.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := km.RunBest(ctx, job, nil, RestartOptions{Restarts: 3})
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("BatchSize", func(t *testing.T) {
		mb := job
		mb.Algorithm = Minibatch
		_, err := km.RunBest(context.Background(), mb, nil, RestartOptions{Restarts: 2})
		require.ErrorIs(t, err, ErrInvalidBatchSize)
	})

	t.Run("Algorithm", func(t *testing.T) {
		bad := job
		bad.Algorithm = Algorithm(7)
		_, err := km.RunBest(context.Background(), bad, nil, RestartOptions{Restarts: 1})
		require.Error(t, err)
	})
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = min(m, v)
	}
	return m
}
