package main

import (
	"errors"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/theflywheel/chainmap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	m := chainmap.New[int, int](chainmap.WithLogger(logger))
	fmt.Println("Map created with capacity", m.Capacity())

	// Insert some data
	for i := 0; i < 10; i++ {
		m.Insert(i, i*100)
	}
	fmt.Println("Inserted 10 key-value pairs")

	// Retrieve and display some values
	for i := 0; i < 15; i += 2 {
		value, err := m.At(i)
		if errors.Is(err, chainmap.ErrNotFound) {
			fmt.Printf("Key %d not found\n", i)
			continue
		}
		fmt.Printf("Key %d => Value %d\n", i, value)
	}

	// Insert keeps the existing value; Index updates it in place
	m.Insert(2, 555)
	*m.Index(2) = 999
	value, _ := m.At(2)
	fmt.Printf("Updated key 2 => Value %d\n", value)

	// Index on a missing key creates it
	*m.Index(42)++
	fmt.Printf("Key 42 => Value %d, size %d\n", *m.Index(42), m.Len())

	// Enough entries to trigger growth, logged at debug level
	for i := 100; i < 400; i++ {
		m.Insert(i, i)
	}
	fmt.Printf("Size %d, capacity %d, load factor %.2f\n", m.Len(), m.Capacity(), m.LoadFactor())

	// Erase a key, then walk the first few entries with a cursor
	m.Erase(2)
	n := 0
	for c := m.Begin(); !c.AtEnd() && n < 5; c = c.Next() {
		fmt.Printf("Cursor at key %d => Value %d\n", c.Key(), *c.Value())
		n++
	}

	fmt.Println("Example completed successfully")
}
