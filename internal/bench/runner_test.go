package bench_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/theflywheel/chainmap/internal/bench"
)

func TestRunner(t *testing.T) {
	r := bench.NewRunner(zaptest.NewLogger(t))

	t.Run("IntKeys", func(t *testing.T) {
		result, err := r.Run(context.Background(), bench.Workload{
			Name:             "Ints",
			Keys:             1000,
			ValueSize:        8,
			EraseFraction:    0.5,
			ProgressInterval: 250,
		})
		require.NoError(t, err)
		require.Equal(t, "Ints", result.Name)
		require.Equal(t, "custom", result.Category)

		// Growth at the 201st and 801st insert.
		require.Equal(t, float64(2), result.Metrics["rehashes"])
		require.Equal(t, float64(1600), result.Metrics["final_capacity"])
		for _, name := range []string{"insertion_rate", "random_lookup_rate", "sequential_lookup_rate", "erase_rate"} {
			require.Contains(t, result.Metrics, name)
		}
	})

	t.Run("UUIDKeys", func(t *testing.T) {
		result, err := r.Run(context.Background(), bench.Workload{
			Name:         "UUIDs",
			Keys:         500,
			KeyKind:      bench.KeyUUID,
			ValueSize:    16,
			Capacity:     100,
			GrowthFactor: 2,
		})
		require.NoError(t, err)
		require.NotContains(t, result.Metrics, "erase_rate")
	})

	t.Run("AlphanumericKeys", func(t *testing.T) {
		_, err := r.Run(context.Background(), bench.Workload{
			Name:    "Words",
			Keys:    200,
			KeyKind: bench.KeyAlphanumeric,
			KeySize: 4,
		})
		require.NoError(t, err)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.Run(ctx, bench.Workload{Name: "Cancelled", Keys: 100, ProgressInterval: 10})
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("RunAll", func(t *testing.T) {
		summary := bench.NewSummary("abc", "main")
		err := r.RunAll(context.Background(), bench.Config{Workloads: []bench.Workload{
			{Name: "A", Keys: 10},
			{Name: "B", Keys: 20},
		}}, &summary)
		require.NoError(t, err)
		require.Len(t, summary.Results, 2)

		err = r.RunAll(context.Background(), bench.Config{Workloads: []bench.Workload{{Name: "Bad"}}}, &summary)
		require.ErrorContains(t, err, "workload Bad")
	})
}
