package bench

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateKeys returns w.Keys distinct keys of the requested kind.
func generateKeys(w Workload) []string {
	keys := make([]string, w.Keys)
	if w.KeyKind == KeyInt {
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}

	// Random keys may repeat, in particular short alphanumeric ones.
	seen := make(map[string]struct{}, w.Keys)
	for i := range keys {
		for {
			var k string
			if w.KeyKind == KeyUUID {
				k = uuid.NewString()
			} else {
				k = string(generateAlphanumeric(w.KeySize))
			}
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				keys[i] = k
				break
			}
		}
	}
	return keys
}

// generateAlphanumeric creates a random alphanumeric string of given length
func generateAlphanumeric(length int) []byte {
	result := make([]byte, length)
	limit := big.NewInt(int64(len(alphanumeric)))
	for i := range result {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err)
		}
		result[i] = alphanumeric[n.Int64()]
	}
	return result
}
