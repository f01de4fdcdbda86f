package chainmap

import (
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/theflywheel/chainmap/internal/chain"
)

// Entry is a key/value pair, used for bulk construction and snapshots.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a hash table with separate chaining. The zero value is not
// usable; create maps with New or one of the From constructors.
//
// A Map is not safe for concurrent use. See package locked for a guarded
// wrapper.
type Map[K comparable, V any] struct {
	// buckets has capacity+1 chains. The last one is a sentinel that
	// stays empty so that the end cursor is an ordinary position.
	buckets []chain.Chain[K, V]
	size    int
	hasher  Hasher[K]

	growthFloor  int
	growthFactor int

	// generation changes whenever buckets is replaced. Cursors record it
	// to detect use after growth, Clear or Assign.
	generation uint64

	logger  *zap.Logger
	metrics *metrics
	opts    options
}

// New returns an empty map using DefaultHasher.
func New[K comparable, V any](opts ...Option) *Map[K, V] {
	return NewWithHasher[K, V](nil, opts...)
}

// NewWithHasher returns an empty map routing keys with h. A nil h selects
// DefaultHasher.
func NewWithHasher[K comparable, V any](h Hasher[K], opts ...Option) *Map[K, V] {
	if h == nil {
		h = DefaultHasher[K]()
	}
	o := buildOptions(opts)
	m := &Map[K, V]{
		hasher:       h,
		growthFloor:  o.growthFloor,
		growthFactor: o.growthFactor,
		logger:       o.logger,
		opts:         o,
	}
	if o.metricsName != "" {
		m.metrics = newMetrics(o.metricsName)
	}
	m.reset(o.capacity)
	return m
}

// FromSeq builds a map from the pairs yielded by seq, in order. When a key
// repeats, the first occurrence wins.
func FromSeq[K comparable, V any](seq iter.Seq2[K, V], h Hasher[K], opts ...Option) *Map[K, V] {
	m := NewWithHasher[K, V](h, opts...)
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// FromRange builds a map from the entries in [begin, end) of another map.
// Both cursors must come from the same map.
func FromRange[K comparable, V any](begin, end ConstCursor[K, V], h Hasher[K], opts ...Option) *Map[K, V] {
	m := NewWithHasher[K, V](h, opts...)
	for c := begin; !c.Equal(end); c = c.Next() {
		m.Insert(c.Key(), c.Value())
	}
	return m
}

// FromEntries builds a map from a literal list of entries. When a key
// repeats, the first occurrence wins.
func FromEntries[K comparable, V any](entries []Entry[K, V], h Hasher[K], opts ...Option) *Map[K, V] {
	m := NewWithHasher[K, V](h, opts...)
	for _, e := range entries {
		m.Insert(e.Key, e.Value)
	}
	return m
}

func (m *Map[K, V]) reset(capacity int) {
	m.buckets = make([]chain.Chain[K, V], capacity+1)
	m.size = 0
	m.generation++
	m.metrics.setCapacity(capacity)
}

func (m *Map[K, V]) bucketOf(key K) int {
	return int(m.hasher.Hash(key) % uint64(m.Capacity()))
}

func (m *Map[K, V]) lookup(key K) (int, *chain.Node[K, V]) {
	b := m.bucketOf(key)
	n, scanned := m.buckets[b].Find(key)
	m.metrics.observeFind(scanned, n != nil)
	return b, n
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Empty reports whether the map holds no entries.
func (m *Map[K, V]) Empty() bool {
	return m.size == 0
}

// Capacity returns the number of real buckets.
func (m *Map[K, V]) Capacity() int {
	return len(m.buckets) - 1
}

// LoadFactor returns the average number of entries per bucket.
func (m *Map[K, V]) LoadFactor() float64 {
	return float64(m.size) / float64(m.Capacity())
}

// Hasher returns the hash function used by the map.
func (m *Map[K, V]) Hasher() Hasher[K] {
	return m.hasher
}

// Insert adds key with value unless the key is already present, in which
// case the stored value is left untouched. It reports whether the entry
// was added. A successful insert may grow the table, which invalidates
// every outstanding cursor.
func (m *Map[K, V]) Insert(key K, value V) bool {
	b := m.bucketOf(key)
	if n, _ := m.buckets[b].Find(key); n != nil {
		return false
	}
	m.buckets[b].PushBack(key, value)
	m.size++
	m.maybeGrow()
	return true
}

// InsertEntry is Insert for an Entry.
func (m *Map[K, V]) InsertEntry(e Entry[K, V]) bool {
	return m.Insert(e.Key, e.Value)
}

// Find returns a cursor to the entry holding key, or End() if absent.
func (m *Map[K, V]) Find(key K) Cursor[K, V] {
	b, n := m.lookup(key)
	if n == nil {
		return m.End()
	}
	return Cursor[K, V]{pos: m.positionAt(b, n)}
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, n := m.lookup(key)
	return n != nil
}

// Get returns the value stored for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	_, n := m.lookup(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Value, true
}

// At returns the value stored for key. If the key is absent the error
// satisfies errors.Is(err, ErrNotFound). At never modifies the map.
func (m *Map[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, errors.Wrapf(ErrNotFound, "key %v", key)
	}
	return v, nil
}

// Index returns a pointer to the value stored for key.
//
// Unlike Find, Get and At, Index is not a pure lookup: when key is absent
// it inserts it with the zero value of V first, which may grow the table.
// The returned pointer remains usable across growth, but not after the key
// is erased or the map is cleared or assigned to.
func (m *Map[K, V]) Index(key K) *V {
	b := m.bucketOf(key)
	n, _ := m.buckets[b].Find(key)
	if n == nil {
		var zero V
		n = m.buckets[b].PushBack(key, zero)
		m.size++
		m.maybeGrow()
	}
	return &n.Value
}

// Erase removes key and reports whether it was present. Erasing an absent
// key is a no-op. Erase never shrinks the table.
func (m *Map[K, V]) Erase(key K) bool {
	b := m.bucketOf(key)
	n, _ := m.buckets[b].Find(key)
	if n == nil {
		return false
	}
	m.buckets[b].Remove(n)
	m.size--
	return true
}

// Clear discards every entry and restores the initial capacity. All
// outstanding cursors are invalidated.
func (m *Map[K, V]) Clear() {
	m.reset(m.opts.capacity)
}

// Assign replaces the contents of m with a deep copy of src, including its
// hasher, capacity and growth settings. All cursors into m are
// invalidated; cursors into src are unaffected.
func (m *Map[K, V]) Assign(src *Map[K, V]) {
	if m == src {
		return
	}
	buckets := make([]chain.Chain[K, V], len(src.buckets))
	for i := range src.buckets[:src.Capacity()] {
		for n := src.buckets[i].Front(); n != nil; n = n.Next() {
			buckets[i].PushBack(n.Key(), n.Value)
		}
	}
	m.buckets = buckets
	m.size = src.size
	m.hasher = src.hasher
	m.growthFloor = src.growthFloor
	m.growthFactor = src.growthFactor
	m.opts.capacity = src.opts.capacity
	m.generation++
	m.metrics.setCapacity(m.Capacity())
}

// Clone returns a deep copy of m. Logger and metrics settings are shared.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{
		logger:  m.logger,
		metrics: m.metrics,
		opts:    m.opts,
	}
	c.Assign(m)
	return c
}

// Entries returns a snapshot of every entry in iteration order.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.size)
	for k, v := range m.All() {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}
