/*
Package chainmap provides a generic hash table built on separate chaining.

Map associates unique keys with values. Each bucket holds a chain of the
entries whose keys hash to it, and the table grows automatically as it
fills up.

Basic usage:

	import "github.com/theflywheel/chainmap"

	m := chainmap.New[string, int]()

	// Insert never overwrites an existing key
	m.Insert("apples", 3)
	m.Insert("apples", 5) // no-op, value stays 3

	// Checked access
	n, err := m.At("pears")
	if errors.Is(err, chainmap.ErrNotFound) {
		fmt.Println("no pears")
	}

	// Indexed access creates missing keys with the zero value
	*m.Index("pears") += 2

	// Cursor iteration
	for c := m.Begin(); !c.AtEnd(); c = c.Next() {
		fmt.Println(c.Key(), *c.Value())
	}

	// Range iteration
	for k, v := range m.All() {
		fmt.Println(k, v)
	}

Features:

  - Any comparable key type, with a pluggable Hasher (xxhash by default)
  - Insert keeps the first value stored for a key
  - Index inserts missing keys, At reports ErrNotFound instead
  - Mutable Cursor and read-only ConstCursor over the same traversal
  - Optional zap logging of growth and Prometheus metrics

Implementation Details:

The bucket store holds capacity+1 chains. The last chain is a sentinel
that is never populated, so the end cursor is the ordinary position "end
of the sentinel chain" and needs no special flag.

After every successful insertion the table checks its load. Tables smaller
than the growth floor (100 by default) never grow. Beyond that, once the
number of entries exceeds growthFactor/2 per bucket (2 with the default
factor of 4), the table allocates growthFactor times as many buckets and
moves every entry into its new bucket in a single pass. Erasing never
shrinks the table.

Growth, Clear and Assign replace the bucket store and invalidate every
outstanding cursor; Erase invalidates cursors pointing at the erased entry.
Using an invalidated cursor panics with ErrStaleCursor rather than reading
stale data.

A Map is not safe for concurrent use. Package locked layers a read/write
mutex on top of it.
*/
package chainmap
