package chainmap

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by At when the key is not present.
	ErrNotFound = errors.New("key not found")

	// ErrStaleCursor is the panic value used when a cursor outlives the
	// bucket store or the entry it points into.
	ErrStaleCursor = errors.New("cursor used after the map was restructured or the entry was erased")

	// ErrEndCursor is the panic value used when the end cursor is
	// dereferenced.
	ErrEndCursor = errors.New("dereference of end cursor")
)
