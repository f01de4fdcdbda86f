package bench

import (
	"bytes"
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/theflywheel/chainmap"
)

// Runner executes workloads against fresh chainmap.Map instances.
type Runner struct {
	logger *zap.Logger
}

// NewRunner returns a Runner logging progress to logger.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// RunAll runs every workload of c in order.
func (r *Runner) RunAll(ctx context.Context, c Config, summary *Summary) error {
	for _, w := range c.Workloads {
		result, err := r.Run(ctx, w)
		if err != nil {
			return errors.Wrapf(err, "workload %s", w.Name)
		}
		summary.Results = append(summary.Results, result)
	}
	return nil
}

// Run inserts the workload's keys, looks them all up in random and then
// sequential order, verifying every value, and finally erases a fraction
// of them.
func (r *Runner) Run(ctx context.Context, w Workload) (Result, error) {
	if err := w.validate(); err != nil {
		return Result{}, err
	}
	logger := r.logger.With(zap.String("workload", w.Name))
	logger.Info("generating keys", zap.Int("keys", w.Keys), zap.String("key_kind", string(w.KeyKind)))
	keys := generateKeys(w)
	values := make([][]byte, len(keys))
	for i := range values {
		values[i] = generateAlphanumeric(w.ValueSize)
	}

	opts := []chainmap.Option{chainmap.WithLogger(logger.Named("chainmap"))}
	if w.Capacity > 0 {
		opts = append(opts, chainmap.WithCapacity(w.Capacity))
	}
	if w.GrowthFactor > 0 {
		opts = append(opts, chainmap.WithGrowthFactor(w.GrowthFactor))
	}
	m := chainmap.New[string, []byte](opts...)
	metrics := map[string]float64{}

	// Insertion
	rehashes := 0
	capacity := m.Capacity()
	start := time.Now()
	for i, k := range keys {
		if !m.Insert(k, values[i]) {
			return Result{}, errors.Errorf("key %q inserted twice", k)
		}
		if c := m.Capacity(); c != capacity {
			rehashes++
			capacity = c
		}
		if w.ProgressInterval > 0 && (i+1)%w.ProgressInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			logger.Info("insert progress",
				zap.Int("inserted", i+1),
				zap.Int("capacity", capacity),
				zap.Float64("load_factor", m.LoadFactor()))
		}
	}
	insertDuration := time.Since(start)
	metrics["insertion_rate"] = rate(len(keys), insertDuration)
	metrics["ns_per_insert"] = float64(insertDuration.Nanoseconds()) / float64(len(keys))
	metrics["rehashes"] = float64(rehashes)
	metrics["final_capacity"] = float64(m.Capacity())
	metrics["load_factor"] = m.LoadFactor()
	metrics["memory_alloc_mb"] = allocatedMB()
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Random lookups
	order := rand.New(rand.NewPCG(1, 2)).Perm(len(keys))
	start = time.Now()
	for _, i := range order {
		if err := verify(m, keys[i], values[i]); err != nil {
			return Result{}, err
		}
	}
	metrics["random_lookup_rate"] = rate(len(keys), time.Since(start))
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Sequential lookups
	start = time.Now()
	for i, k := range keys {
		if err := verify(m, k, values[i]); err != nil {
			return Result{}, err
		}
	}
	metrics["sequential_lookup_rate"] = rate(len(keys), time.Since(start))

	// Erasure
	if toErase := int(float64(len(keys)) * w.EraseFraction); toErase > 0 {
		start = time.Now()
		for _, i := range order[:toErase] {
			if !m.Erase(keys[i]) {
				return Result{}, errors.Errorf("key %q missing on erase", keys[i])
			}
		}
		metrics["erase_rate"] = rate(toErase, time.Since(start))
		if m.Len() != len(keys)-toErase {
			return Result{}, errors.Errorf("size %d after erasing %d of %d keys", m.Len(), toErase, len(keys))
		}
	}

	logger.Info("workload complete",
		zap.Float64("insertion_rate", metrics["insertion_rate"]),
		zap.Float64("random_lookup_rate", metrics["random_lookup_rate"]),
		zap.Int("rehashes", rehashes),
		zap.Int("capacity", m.Capacity()))

	return Result{Name: w.Name, Category: w.Category, Metrics: metrics}, nil
}

func verify(m *chainmap.Map[string, []byte], key string, expected []byte) error {
	v, err := m.At(key)
	if err != nil {
		return err
	}
	if !bytes.Equal(v, expected) {
		return errors.Errorf("value mismatch for key %q", key)
	}
	return nil
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

func allocatedMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / (1024 * 1024)
}
