package chainmap

import (
	"iter"
)

// All returns an iterator over every key/value pair, in cursor order. The
// map must not be modified while iterating, except for assigning through
// Index on keys that are already present.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := m.beginPosition(); !p.atEnd(); p.advance() {
			n := p.deref()
			if !yield(n.Key(), n.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys of the map.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values of the map.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}
