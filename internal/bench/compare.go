package bench

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DefaultSignificanceThreshold is the percent change above which a
// metric difference counts as significant.
const DefaultSignificanceThreshold = 5.0

// ErrRegression is returned by Comparison.Err when at least one
// benchmark regressed significantly.
var ErrRegression = errors.New("significant performance regressions detected")

// MetricComparison compares one metric between two runs.
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsImprovement bool    `json:"is_improvement"`
	IsSignificant bool    `json:"is_significant"`
}

// BenchmarkComparison compares every shared metric of one benchmark.
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	OverallAssessment string             `json:"overall_assessment"`
	HasRegressions    bool               `json:"has_regressions"`
	Score             float64            `json:"score"`
}

// Comparison is the result of comparing two summaries.
type Comparison struct {
	BaseCommit             string                `json:"base_commit"`
	CurrentCommit          string                `json:"current_commit"`
	TotalBenchmarks        int                   `json:"total_benchmarks"`
	ImprovedBenchmarks     int                   `json:"improved_benchmarks"`
	RegressionBenchmarks   int                   `json:"regression_benchmarks"`
	SignificantRegressions int                   `json:"significant_regressions"`
	BenchmarkComparisons   []BenchmarkComparison `json:"benchmark_comparisons"`
}

// Compare matches the results of current against base by name. Results
// present in only one of them are skipped. Benchmarks are sorted with
// regressions first, then by ascending score.
func Compare(base, current Summary, threshold float64) Comparison {
	baseResults := make(map[string]Result, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	c := Comparison{
		BaseCommit:           base.CommitID,
		CurrentCommit:        current.CommitID,
		BenchmarkComparisons: []BenchmarkComparison{},
	}
	for _, cur := range current.Results {
		b, found := baseResults[cur.Name]
		if !found {
			continue
		}
		bc := compareResult(b, cur, threshold)
		switch bc.OverallAssessment {
		case "REGRESSION":
			c.RegressionBenchmarks++
			c.SignificantRegressions++
		case "IMPROVEMENT":
			c.ImprovedBenchmarks++
		}
		c.BenchmarkComparisons = append(c.BenchmarkComparisons, bc)
	}

	sort.SliceStable(c.BenchmarkComparisons, func(i, j int) bool {
		a, b := c.BenchmarkComparisons[i], c.BenchmarkComparisons[j]
		if a.HasRegressions != b.HasRegressions {
			return a.HasRegressions
		}
		return a.Score < b.Score
	})
	c.TotalBenchmarks = len(c.BenchmarkComparisons)
	return c
}

func compareResult(base, current Result, threshold float64) BenchmarkComparison {
	bc := BenchmarkComparison{
		Name:              current.Name,
		Category:          current.Category,
		MetricComparisons: []MetricComparison{},
	}

	names := make([]string, 0, len(current.Metrics))
	for name := range current.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	score := 0.0
	for _, name := range names {
		baseValue, found := base.Metrics[name]
		if !found {
			continue
		}
		currentValue := current.Metrics[name]

		percentChange := 0.0
		if baseValue != 0 {
			percentChange = (currentValue - baseValue) / baseValue * 100
		}

		mc := MetricComparison{
			Name:          name,
			BaseValue:     baseValue,
			CurrentValue:  currentValue,
			PercentChange: percentChange,
			IsSignificant: math.Abs(percentChange) >= threshold,
		}
		if IsHigherBetter(name) {
			mc.IsRegression = percentChange < 0
			mc.IsImprovement = percentChange > 0
		} else {
			mc.IsRegression = percentChange > 0
			mc.IsImprovement = percentChange < 0
		}

		if mc.IsRegression && mc.IsSignificant {
			bc.HasRegressions = true
		}
		if mc.IsImprovement {
			score += math.Abs(percentChange)
		} else if mc.IsRegression {
			score -= math.Abs(percentChange)
		}
		bc.MetricComparisons = append(bc.MetricComparisons, mc)
	}

	if n := len(bc.MetricComparisons); n > 0 {
		bc.Score = score / float64(n)
	}
	switch {
	case bc.HasRegressions:
		bc.OverallAssessment = "REGRESSION"
	case bc.Score > 0:
		bc.OverallAssessment = "IMPROVEMENT"
	default:
		bc.OverallAssessment = "NEUTRAL"
	}
	return bc
}

// Err returns an error wrapping ErrRegression if any benchmark regressed
// significantly.
func (c Comparison) Err() error {
	if c.SignificantRegressions > 0 {
		return errors.Wrapf(ErrRegression, "%d benchmarks", c.SignificantRegressions)
	}
	return nil
}

// IsHigherBetter reports whether larger values of the named metric are
// better. Rates are; durations, sizes and rehash counts are not.
func IsHigherBetter(metricName string) bool {
	for _, pattern := range []string{"_rate", "ops_per_sec", "operations", "throughput"} {
		if strings.Contains(metricName, pattern) {
			return true
		}
	}
	return false
}

// Print writes a human readable report of c to w.
func (c Comparison) Print(w io.Writer) {
	fmt.Fprintf(w, "Benchmark Comparison: %s vs %s\n\n", abbreviate(c.BaseCommit), abbreviate(c.CurrentCommit))
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "- Total benchmarks compared: %d\n", c.TotalBenchmarks)
	fmt.Fprintf(w, "- Improvements: %d\n", c.ImprovedBenchmarks)
	fmt.Fprintf(w, "- Regressions: %d (significant: %d)\n\n", c.RegressionBenchmarks, c.SignificantRegressions)

	if c.TotalBenchmarks == 0 {
		fmt.Fprintln(w, "No matching benchmarks found for comparison")
		return
	}

	fmt.Fprintln(w, "Benchmark Details (sorted by impact):")
	fmt.Fprintln(w, "======================================")
	for _, bc := range c.BenchmarkComparisons {
		indicator := "+"
		if bc.HasRegressions {
			indicator = "!"
		} else if bc.Score < 0 {
			indicator = "~"
		} else if bc.Score == 0 {
			indicator = "="
		}
		fmt.Fprintf(w, "\n%s %s (%s):\n", indicator, bc.Name, bc.Category)

		metrics := append([]MetricComparison(nil), bc.MetricComparisons...)
		sort.SliceStable(metrics, func(i, j int) bool {
			return math.Abs(metrics[i].PercentChange) > math.Abs(metrics[j].PercentChange)
		})
		for _, m := range metrics {
			if m.PercentChange == 0 {
				continue
			}
			marker := " "
			if m.IsRegression && m.IsSignificant {
				marker = "▼"
			} else if m.IsImprovement && m.IsSignificant {
				marker = "▲"
			}
			fmt.Fprintf(w, "  %s %-24s: %+8.2f%% (%g → %g)\n",
				marker, m.Name, m.PercentChange, m.BaseValue, m.CurrentValue)
		}
	}
}
