package chainmap

import (
	"time"

	"go.uber.org/zap"

	"github.com/theflywheel/chainmap/internal/chain"
)

// maybeGrow runs after every successful insertion. Small tables never
// grow. Otherwise the table grows by growthFactor once the number of
// entries exceeds growthFactor/2 per bucket.
func (m *Map[K, V]) maybeGrow() {
	capacity := m.Capacity()
	if m.size < m.growthFloor || capacity < m.growthFloor {
		return
	}
	if m.size > (m.growthFactor/2)*capacity {
		m.rehash(m.growthFactor * capacity)
	}
}

// rehash moves every entry into a new bucket store of the given capacity.
// Both allocations happen before any node is moved, so a failure leaves
// the table as it was.
func (m *Map[K, V]) rehash(newCapacity int) {
	start := time.Now()
	oldCapacity := m.Capacity()
	m.logger.Debug("starting rehash",
		zap.Int("old_capacity", oldCapacity),
		zap.Int("new_capacity", newCapacity),
		zap.Int("size", m.size))

	buckets := make([]chain.Chain[K, V], newCapacity+1)
	nodes := make([]*chain.Node[K, V], 0, m.size)
	for i := 0; i < oldCapacity; i++ {
		nodes = m.buckets[i].Detach(nodes)
	}
	for _, n := range nodes {
		b := m.hasher.Hash(n.Key()) % uint64(newCapacity)
		buckets[b].Adopt(n)
	}

	m.buckets = buckets
	m.generation++
	m.metrics.observeRehash(newCapacity)

	m.logger.Debug("rehash complete",
		zap.Int("capacity", newCapacity),
		zap.Int("size", m.size),
		zap.Duration("duration", time.Since(start)))
}
