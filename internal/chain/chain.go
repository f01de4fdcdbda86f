// Package chain provides the collision chain stored in every bucket of a
// chainmap.Map: a doubly linked list of key/value nodes.
package chain

// Node holds one entry of a chain. The key is fixed at creation time.
type Node[K comparable, V any] struct {
	key   K
	Value V

	next, prev *Node[K, V]
	owner      *Chain[K, V]
}

// Key returns the key stored in the node.
func (n *Node[K, V]) Key() K {
	return n.key
}

// Next returns the node that follows n in its chain, or nil when n is the
// last one.
func (n *Node[K, V]) Next() *Node[K, V] {
	return n.next
}

// Removed reports whether n has been detached from the chain it was
// created in.
func (n *Node[K, V]) Removed() bool {
	return n.owner == nil
}

// Chain is an insertion ordered list of nodes. The zero value is an empty
// chain ready to use.
type Chain[K comparable, V any] struct {
	head, tail *Node[K, V]
	len        int
}

// Len returns the number of nodes in the chain.
func (c *Chain[K, V]) Len() int {
	return c.len
}

// Empty reports whether the chain has no nodes.
func (c *Chain[K, V]) Empty() bool {
	return c.len == 0
}

// Front returns the first node of the chain, or nil if it is empty.
func (c *Chain[K, V]) Front() *Node[K, V] {
	return c.head
}

// PushBack appends a new node and returns it.
func (c *Chain[K, V]) PushBack(key K, value V) *Node[K, V] {
	n := &Node[K, V]{key: key, Value: value}
	c.link(n)
	return n
}

// Adopt appends a node that is not part of any chain. It is used to move
// nodes between bucket stores without reallocating them.
func (c *Chain[K, V]) Adopt(n *Node[K, V]) {
	if n.owner != nil {
		panic("chain: adopting a node that is still linked")
	}
	c.link(n)
}

func (c *Chain[K, V]) link(n *Node[K, V]) {
	n.owner = c
	n.next = nil
	n.prev = c.tail
	if c.tail == nil {
		c.head = n
	} else {
		c.tail.next = n
	}
	c.tail = n
	c.len++
}

// Find returns the node holding key together with the number of nodes
// inspected. The node is nil when the key is absent.
func (c *Chain[K, V]) Find(key K) (*Node[K, V], int) {
	scanned := 0
	for n := c.head; n != nil; n = n.next {
		scanned++
		if n.key == key {
			return n, scanned
		}
	}
	return nil, scanned
}

// Remove unlinks n from the chain. n must belong to c.
func (c *Chain[K, V]) Remove(n *Node[K, V]) {
	if n.owner != c {
		panic("chain: removing a node owned by another chain")
	}
	c.unlink(n)
	n.next = nil
	n.prev = nil
}

// Detach unlinks every node of the chain and appends them to dst, leaving
// c empty.
func (c *Chain[K, V]) Detach(dst []*Node[K, V]) []*Node[K, V] {
	for n := c.head; n != nil; {
		next := n.next
		n.owner = nil
		n.next = nil
		n.prev = nil
		dst = append(dst, n)
		n = next
	}
	c.head, c.tail, c.len = nil, nil, 0
	return dst
}

func (c *Chain[K, V]) unlink(n *Node[K, V]) {
	if n.prev == nil {
		c.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		c.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.owner = nil
	c.len--
}
