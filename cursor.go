package chainmap

import (
	"github.com/pkg/errors"

	"github.com/theflywheel/chainmap/internal/chain"
)

// position identifies an iteration point: a bucket index and a node of
// that bucket's chain. A nil node is the end of the chain; the end of the
// whole map is the end of the sentinel bucket.
type position[K comparable, V any] struct {
	m          *Map[K, V]
	bucket     int
	node       *chain.Node[K, V]
	generation uint64
}

func (m *Map[K, V]) positionAt(bucket int, node *chain.Node[K, V]) position[K, V] {
	return position[K, V]{m: m, bucket: bucket, node: node, generation: m.generation}
}

func (m *Map[K, V]) beginPosition() position[K, V] {
	b := 0
	for b != m.Capacity() && m.buckets[b].Empty() {
		b++
	}
	return m.positionAt(b, m.buckets[b].Front())
}

func (m *Map[K, V]) endPosition() position[K, V] {
	return m.positionAt(m.Capacity(), nil)
}

func (p *position[K, V]) check() {
	if p.m == nil || p.generation != p.m.generation || (p.node != nil && p.node.Removed()) {
		panic(errors.WithStack(ErrStaleCursor))
	}
}

func (p *position[K, V]) deref() *chain.Node[K, V] {
	p.check()
	if p.node == nil {
		panic(errors.WithStack(ErrEndCursor))
	}
	return p.node
}

// advance moves to the next entry, skipping empty buckets. Advancing the
// end position leaves it unchanged.
func (p *position[K, V]) advance() {
	p.check()
	capacity := p.m.Capacity()
	if p.node != nil {
		p.node = p.node.Next()
	}
	if p.node != nil || p.bucket == capacity {
		return
	}
	p.bucket++
	for p.bucket != capacity && p.m.buckets[p.bucket].Empty() {
		p.bucket++
	}
	p.node = p.m.buckets[p.bucket].Front()
}

func (p *position[K, V]) equal(o *position[K, V]) bool {
	return p.m == o.m && p.bucket == o.bucket && p.node == o.node
}

func (p *position[K, V]) atEnd() bool {
	p.check()
	return p.bucket == p.m.Capacity()
}

// Cursor points at an entry of a Map and allows its value to be modified.
// Cursors are invalidated when the table grows, is cleared or assigned to,
// and when the entry they point at is erased. Using an invalidated cursor
// panics with ErrStaleCursor.
type Cursor[K comparable, V any] struct {
	pos position[K, V]
}

// Begin returns a cursor to the first entry, or End() if the map is
// empty. Iteration visits buckets in index order and, within a bucket,
// entries in insertion order.
func (m *Map[K, V]) Begin() Cursor[K, V] {
	return Cursor[K, V]{pos: m.beginPosition()}
}

// End returns the cursor one past the last entry.
func (m *Map[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{pos: m.endPosition()}
}

// Key returns the key of the entry.
func (c Cursor[K, V]) Key() K {
	return c.pos.deref().Key()
}

// Value returns a pointer to the value of the entry.
func (c Cursor[K, V]) Value() *V {
	return &c.pos.deref().Value
}

// Entry returns a copy of the entry.
func (c Cursor[K, V]) Entry() Entry[K, V] {
	n := c.pos.deref()
	return Entry[K, V]{Key: n.Key(), Value: n.Value}
}

// Next returns a cursor to the following entry.
func (c Cursor[K, V]) Next() Cursor[K, V] {
	c.pos.advance()
	return c
}

// Equal reports whether both cursors point at the same position.
func (c Cursor[K, V]) Equal(o Cursor[K, V]) bool {
	return c.pos.equal(&o.pos)
}

// AtEnd reports whether c is the end cursor.
func (c Cursor[K, V]) AtEnd() bool {
	return c.pos.atEnd()
}

// Const returns a read-only cursor at the same position.
func (c Cursor[K, V]) Const() ConstCursor[K, V] {
	return ConstCursor[K, V](c)
}

// ConstCursor is the read-only counterpart of Cursor. It shares the same
// traversal and invalidation rules.
type ConstCursor[K comparable, V any] struct {
	pos position[K, V]
}

// Key returns the key of the entry.
func (c ConstCursor[K, V]) Key() K {
	return c.pos.deref().Key()
}

// Value returns a copy of the value of the entry.
func (c ConstCursor[K, V]) Value() V {
	return c.pos.deref().Value
}

// Entry returns a copy of the entry.
func (c ConstCursor[K, V]) Entry() Entry[K, V] {
	n := c.pos.deref()
	return Entry[K, V]{Key: n.Key(), Value: n.Value}
}

// Next returns a cursor to the following entry.
func (c ConstCursor[K, V]) Next() ConstCursor[K, V] {
	c.pos.advance()
	return c
}

// Equal reports whether both cursors point at the same position.
func (c ConstCursor[K, V]) Equal(o ConstCursor[K, V]) bool {
	return c.pos.equal(&o.pos)
}

// AtEnd reports whether c is the end cursor.
func (c ConstCursor[K, V]) AtEnd() bool {
	return c.pos.atEnd()
}
