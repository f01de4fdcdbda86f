package chainmap

import (
	"iter"
)

// View is a read-only handle on a Map. Its lookups and cursors never
// modify the map, and it has no Index method.
type View[K comparable, V any] struct {
	m *Map[K, V]
}

// View returns a read-only handle on m.
func (m *Map[K, V]) View() View[K, V] {
	return View[K, V]{m: m}
}

// Len returns the number of entries.
func (v View[K, V]) Len() int { return v.m.Len() }

// Empty reports whether the map holds no entries.
func (v View[K, V]) Empty() bool { return v.m.Empty() }

// Hasher returns the hash function used by the map.
func (v View[K, V]) Hasher() Hasher[K] { return v.m.Hasher() }

// Contains reports whether key is present.
func (v View[K, V]) Contains(key K) bool { return v.m.Contains(key) }

// Get returns the value stored for key and whether it was present.
func (v View[K, V]) Get(key K) (V, bool) { return v.m.Get(key) }

// At returns the value stored for key, or an error wrapping ErrNotFound.
func (v View[K, V]) At(key K) (V, error) { return v.m.At(key) }

// Find returns a cursor to the entry holding key, or End() if absent.
func (v View[K, V]) Find(key K) ConstCursor[K, V] {
	return v.m.Find(key).Const()
}

// Begin returns a cursor to the first entry.
func (v View[K, V]) Begin() ConstCursor[K, V] {
	return ConstCursor[K, V]{pos: v.m.beginPosition()}
}

// End returns the cursor one past the last entry.
func (v View[K, V]) End() ConstCursor[K, V] {
	return ConstCursor[K, V]{pos: v.m.endPosition()}
}

// All returns an iterator over the entries of the map.
func (v View[K, V]) All() iter.Seq2[K, V] { return v.m.All() }
