package bench_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theflywheel/chainmap/internal/bench"
)

func TestCompare(t *testing.T) {
	base := bench.Summary{CommitID: "base1234567", Results: []bench.Result{
		{Name: "Faster", Category: "scale", Metrics: map[string]float64{"insertion_rate": 100, "ns_per_insert": 10}},
		{Name: "Slower", Category: "scale", Metrics: map[string]float64{"insertion_rate": 100, "ns_per_insert": 10}},
		{Name: "Same", Category: "scale", Metrics: map[string]float64{"insertion_rate": 100}},
		{Name: "OnlyInBase", Metrics: map[string]float64{"insertion_rate": 1}},
	}}
	current := bench.Summary{CommitID: "current", Results: []bench.Result{
		{Name: "Faster", Category: "scale", Metrics: map[string]float64{"insertion_rate": 120, "ns_per_insert": 8}},
		{Name: "Slower", Category: "scale", Metrics: map[string]float64{"insertion_rate": 80, "ns_per_insert": 12}},
		{Name: "Same", Category: "scale", Metrics: map[string]float64{"insertion_rate": 102}},
		{Name: "OnlyInCurrent", Metrics: map[string]float64{"insertion_rate": 1}},
	}}

	c := bench.Compare(base, current, bench.DefaultSignificanceThreshold)
	require.Equal(t, 3, c.TotalBenchmarks)
	require.Equal(t, 1, c.RegressionBenchmarks)
	require.Equal(t, 1, c.SignificantRegressions)
	require.Equal(t, 2, c.ImprovedBenchmarks)

	// Regressions first, then ascending score.
	require.Equal(t, "Slower", c.BenchmarkComparisons[0].Name)
	require.Equal(t, "REGRESSION", c.BenchmarkComparisons[0].OverallAssessment)
	require.Equal(t, "Same", c.BenchmarkComparisons[1].Name)
	require.Equal(t, "Faster", c.BenchmarkComparisons[2].Name)
	require.Equal(t, "IMPROVEMENT", c.BenchmarkComparisons[2].OverallAssessment)

	same := c.BenchmarkComparisons[1].MetricComparisons[0]
	require.True(t, same.IsImprovement)
	require.False(t, same.IsSignificant)

	require.ErrorIs(t, c.Err(), bench.ErrRegression)

	var out bytes.Buffer
	c.Print(&out)
	require.Contains(t, out.String(), "Benchmark Comparison: base1234 vs current")
	require.Contains(t, out.String(), "- Regressions: 1 (significant: 1)")
	require.Contains(t, out.String(), "! Slower (scale):")
}

func TestCompareNoRegressions(t *testing.T) {
	s := bench.Summary{Results: []bench.Result{{Name: "A", Metrics: map[string]float64{"rehashes": 3}}}}
	c := bench.Compare(s, s, bench.DefaultSignificanceThreshold)
	require.NoError(t, c.Err())
	require.Equal(t, "NEUTRAL", c.BenchmarkComparisons[0].OverallAssessment)

	var out bytes.Buffer
	bench.Compare(bench.Summary{}, s, 5).Print(&out)
	require.Contains(t, out.String(), "No matching benchmarks found for comparison")
}

func TestIsHigherBetter(t *testing.T) {
	require.True(t, bench.IsHigherBetter("insertion_rate"))
	require.True(t, bench.IsHigherBetter("random_lookup_rate"))
	require.False(t, bench.IsHigherBetter("ns_per_insert"))
	require.False(t, bench.IsHigherBetter("rehashes"))
	require.False(t, bench.IsHigherBetter("memory_alloc_mb"))
}
