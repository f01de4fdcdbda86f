package chainmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theflywheel/chainmap"
)

// identity routes key k to bucket k % capacity.
var identity = chainmap.HasherFunc[int](func(k int) uint64 { return uint64(k) })

func TestCursorEmptyMap(t *testing.T) {
	m := chainmap.New[int, int]()
	require.True(t, m.Begin().Equal(m.End()))
	require.True(t, m.Begin().AtEnd())

	v := m.View()
	require.True(t, v.Begin().Equal(v.End()))
	require.True(t, v.Find(1).Equal(v.End()))
}

func TestCursorOrder(t *testing.T) {
	m := chainmap.NewWithHasher[int, string](identity, chainmap.WithCapacity(10))
	for _, k := range []int{13, 3, 7, 23, 0} {
		m.Insert(k, "")
	}

	var got []int
	for c := m.Begin(); !c.Equal(m.End()); c = c.Next() {
		got = append(got, c.Key())
	}
	// Bucket index ascending, insertion order within a bucket.
	require.Equal(t, []int{0, 13, 3, 23, 7}, got)

	got = got[:0]
	v := m.View()
	for c := v.Begin(); !c.AtEnd(); c = c.Next() {
		got = append(got, c.Key())
	}
	require.Equal(t, []int{0, 13, 3, 23, 7}, got)
}

func TestCursorCompleteness(t *testing.T) {
	m := chainmap.New[int, int]()
	for i := 0; i < 1000; i++ {
		m.Insert(i, i*2)
	}
	for i := 0; i < 1000; i += 3 {
		m.Erase(i)
	}

	seen := map[int]int{}
	for c := m.Begin(); !c.AtEnd(); c = c.Next() {
		seen[c.Key()]++
		require.Equal(t, c.Key()*2, *c.Value())
	}
	require.Len(t, seen, m.Len())
	for k, n := range seen {
		require.Equal(t, 1, n, "key %d visited %d times", k, n)
		require.NotZero(t, k%3)
	}
}

func TestCursorEndStaysAtEnd(t *testing.T) {
	m := chainmap.New[int, int]()
	m.Insert(1, 1)
	end := m.End()
	require.True(t, end.Next().Equal(end))
	require.True(t, m.Begin().Next().Equal(end))
}

func TestCursorMutation(t *testing.T) {
	m := chainmap.New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	for c := m.Begin(); !c.AtEnd(); c = c.Next() {
		*c.Value() *= 10
	}
	require.Equal(t, 10, *m.Index("a"))
	require.Equal(t, 20, *m.Index("b"))

	c := m.Find("a")
	require.Equal(t, chainmap.Entry[string, int]{Key: "a", Value: 10}, c.Entry())
	require.Equal(t, 10, c.Const().Value())
	require.Equal(t, "a", c.Const().Key())
}

func TestFind(t *testing.T) {
	m := chainmap.New[string, int]()
	m.Insert("present", 1)

	c := m.Find("present")
	require.False(t, c.AtEnd())
	require.Equal(t, "present", c.Key())

	require.True(t, m.Find("absent").Equal(m.End()))

	cc := m.View().Find("present")
	require.Equal(t, chainmap.Entry[string, int]{Key: "present", Value: 1}, cc.Entry())
	require.True(t, cc.Equal(c.Const()))
}

func TestCursorsOfDifferentMapsDiffer(t *testing.T) {
	a := chainmap.New[int, int]()
	b := chainmap.New[int, int]()
	require.False(t, a.End().Equal(b.End()))
}

func TestCursorInvalidation(t *testing.T) {
	stale := chainmap.ErrStaleCursor.Error()

	t.Run("Growth", func(t *testing.T) {
		m := chainmap.New[int, int]()
		m.Insert(0, 0)
		c := m.Find(0)
		cc := m.View().Begin()
		for i := 1; i <= 200; i++ {
			m.Insert(i, i)
		}
		require.Equal(t, 400, m.Capacity())
		require.PanicsWithError(t, stale, func() { c.Key() })
		require.PanicsWithError(t, stale, func() { c.Next() })
		require.PanicsWithError(t, stale, func() { cc.Value() })
	})

	t.Run("InsertWithoutGrowthKeepsCursors", func(t *testing.T) {
		m := chainmap.New[int, int]()
		m.Insert(0, 0)
		c := m.Find(0)
		m.Insert(1, 1)
		require.Equal(t, 0, c.Key())
	})

	t.Run("EraseOfPointedEntry", func(t *testing.T) {
		m := chainmap.New[int, int]()
		m.Insert(0, 0)
		m.Insert(1, 1)
		c := m.Find(0)
		other := m.Find(1)
		m.Erase(0)
		require.PanicsWithError(t, stale, func() { c.Value() })
		require.PanicsWithError(t, stale, func() { c.Next() })
		require.Equal(t, 1, other.Key())
	})

	t.Run("Clear", func(t *testing.T) {
		m := chainmap.New[int, int]()
		m.Insert(0, 0)
		c := m.Begin()
		m.Clear()
		require.PanicsWithError(t, stale, func() { c.Key() })
		require.PanicsWithError(t, stale, func() { c.AtEnd() })
	})

	t.Run("Assign", func(t *testing.T) {
		m := chainmap.New[int, int]()
		m.Insert(0, 0)
		c := m.Begin()
		m.Assign(chainmap.New[int, int]())
		require.PanicsWithError(t, stale, func() { c.Key() })
	})

	t.Run("ZeroCursor", func(t *testing.T) {
		var c chainmap.Cursor[int, int]
		require.PanicsWithError(t, stale, func() { c.Key() })
	})

	t.Run("EndDereference", func(t *testing.T) {
		m := chainmap.New[int, int]()
		require.PanicsWithError(t, chainmap.ErrEndCursor.Error(), func() { m.End().Key() })
		require.PanicsWithError(t, chainmap.ErrEndCursor.Error(), func() { m.View().End().Value() })
	})
}

func TestRangeIteration(t *testing.T) {
	m := chainmap.NewWithHasher[int, string](identity, chainmap.WithCapacity(10))
	m.Insert(2, "two")
	m.Insert(1, "one")
	m.Insert(12, "twelve")

	var keys []int
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	require.Equal(t, []int{1, 2, 12}, keys)

	var values []string
	for v := range m.Values() {
		values = append(values, v)
	}
	require.Equal(t, []string{"one", "two", "twelve"}, values)

	n := 0
	for range m.All() {
		n++
		break
	}
	require.Equal(t, 1, n)

	require.Equal(t, []chainmap.Entry[int, string]{
		{Key: 1, Value: "one"},
		{Key: 2, Value: "two"},
		{Key: 12, Value: "twelve"},
	}, m.Entries())

	n = 0
	for range m.View().All() {
		n++
	}
	require.Equal(t, 3, n)
}
