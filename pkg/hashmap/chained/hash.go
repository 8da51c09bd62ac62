package chained

import "github.com/scottcagno/hashtable/pkg/hash/xxhash"

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// HashFunc is a type definition for what a hash function should look like.
// The returned sum is reduced to a bucket index by the HashMap.
type HashFunc func(key string) uint32

// FNV1a32 is the default HashFunc. It folds each code point of the key into
// the accumulator with an xor followed by a multiply, wrapping at 32 bits.
func FNV1a32(key string) uint32 {
	h := uint32(fnvOffset32)
	for _, r := range key {
		h ^= uint32(r)
		h *= fnvPrime32
	}
	return h
}

// Poly31 is a polynomial rolling hash (h = h*31 + c), wrapping at 32 bits.
func Poly31(key string) uint32 {
	var h uint32
	for _, r := range key {
		h = h*31 + uint32(r)
	}
	return h
}

// XXHash32 hashes the UTF-8 bytes of the key with xxhash32
func XXHash32(key string) uint32 {
	return xxhash.Sum32([]byte(key))
}

// bucketIndex reduces a hash sum to an index in [0, n). The sum is treated
// as a signed 32-bit value, so the remainder may be negative before abs.
func bucketIndex(sum uint32, n int) int {
	i := int64(int32(sum)) % int64(n)
	if i < 0 {
		i = -i
	}
	return int(i)
}
