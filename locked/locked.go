// Package locked provides a chainmap.Map guarded by a read/write mutex, for
// callers that share a table between goroutines.
//
// Cursors and value pointers never leave the lock: lookups return copies,
// and in-place updates go through Update.
package locked

import (
	"sync"

	"github.com/theflywheel/chainmap"
)

// Map is a chainmap.Map that is safe for concurrent use.
type Map[K comparable, V any] struct {
	mu sync.RWMutex
	m  *chainmap.Map[K, V]
}

// New wraps m. The caller must not use m directly afterwards.
func New[K comparable, V any](m *chainmap.Map[K, V]) *Map[K, V] {
	return &Map[K, V]{m: m}
}

// Insert adds key unless it is already present, and reports whether it
// was added.
func (lm *Map[K, V]) Insert(key K, value V) bool {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	return lm.m.Insert(key, value)
}

// Erase removes key and reports whether it was present.
func (lm *Map[K, V]) Erase(key K) bool {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	return lm.m.Erase(key)
}

// Update calls fn with a pointer to the value stored for key, inserting
// the zero value first if the key is absent. The pointer must not be
// retained after fn returns.
func (lm *Map[K, V]) Update(key K, fn func(value *V)) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	fn(lm.m.Index(key))
}

// Get returns a copy of the value stored for key.
func (lm *Map[K, V]) Get(key K) (V, bool) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	return lm.m.Get(key)
}

// At returns a copy of the value stored for key, or an error wrapping
// chainmap.ErrNotFound.
func (lm *Map[K, V]) At(key K) (V, error) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	return lm.m.At(key)
}

// Contains reports whether key is present.
func (lm *Map[K, V]) Contains(key K) bool {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	return lm.m.Contains(key)
}

// Len returns the number of entries.
func (lm *Map[K, V]) Len() int {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	return lm.m.Len()
}

// Range calls fn for every entry while holding the read lock, stopping
// early when fn returns false. fn must not call back into lm for writing.
func (lm *Map[K, V]) Range(fn func(key K, value V) bool) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	for k, v := range lm.m.All() {
		if !fn(k, v) {
			return
		}
	}
}

// Snapshot returns a copy of every entry.
func (lm *Map[K, V]) Snapshot() []chainmap.Entry[K, V] {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	return lm.m.Entries()
}

// Clear discards every entry.
func (lm *Map[K, V]) Clear() {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.m.Clear()
}
