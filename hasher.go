package chainmap

import (
	"encoding/binary"
	"hash/maphash"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes the 64-bit hash used to route a key to its bucket.
// Keys that compare equal must produce the same hash.
type Hasher[K any] interface {
	Hash(key K) uint64
}

// HasherFunc adapts a plain function to the Hasher interface.
type HasherFunc[K any] func(key K) uint64

// Hash calls f(key).
func (f HasherFunc[K]) Hash(key K) uint64 {
	return f(key)
}

// DefaultHasher returns the hasher used when none is supplied. Strings and
// fixed-width scalars are hashed with xxhash; any other comparable type
// falls back to maphash.Comparable with a per-hasher seed.
func DefaultHasher[K comparable]() Hasher[K] {
	return xxHasher[K]{seed: maphash.MakeSeed()}
}

type xxHasher[K comparable] struct {
	seed maphash.Seed
}

func (h xxHasher[K]) Hash(key K) uint64 {
	var buf [8]byte
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case int:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int8:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int16:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int32:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case int64:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint8:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint16:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint32:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], k)
	case uintptr:
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
	case bool:
		if k {
			buf[0] = 1
		}
	case float32:
		binary.LittleEndian.PutUint64(buf[:], floatBits(float64(k)))
	case float64:
		binary.LittleEndian.PutUint64(buf[:], floatBits(k))
	default:
		return maphash.Comparable(h.seed, key)
	}
	return xxhash.Sum64(buf[:])
}

// floatBits maps -0 and +0 to the same bits, since they compare equal.
func floatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}
