// Package xxhash implements the 32-bit xxHash checksum.
package xxhash

import (
	"encoding/binary"
	"math/bits"
)

const (
	prime1 uint32 = 2654435761
	prime2 uint32 = 2246822519
	prime3 uint32 = 3266489917
	prime4 uint32 = 668265263
	prime5 uint32 = 374761393
)

// DefaultSeed is the seed Sum32 hashes with
const DefaultSeed uint32 = 0xCAFE

// Sum32 returns the xxhash32 checksum of b using DefaultSeed
func Sum32(b []byte) uint32 {
	return Checksum32(b, DefaultSeed)
}

// Checksum32 returns the xxhash32 checksum of input for the given seed.
func Checksum32(input []byte, seed uint32) uint32 {
	n := uint32(len(input))
	var h uint32
	if len(input) >= 16 {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1
		for ; len(input) >= 16; input = input[16:] {
			v1 = round(v1, binary.LittleEndian.Uint32(input[0:4]))
			v2 = round(v2, binary.LittleEndian.Uint32(input[4:8]))
			v3 = round(v3, binary.LittleEndian.Uint32(input[8:12]))
			v4 = round(v4, binary.LittleEndian.Uint32(input[12:16]))
		}
		h = bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	} else {
		h = seed + prime5
	}
	h += n

	for ; len(input) >= 4; input = input[4:] {
		h += binary.LittleEndian.Uint32(input[:4]) * prime3
		h = bits.RotateLeft32(h, 17) * prime4
	}
	for _, c := range input {
		h += uint32(c) * prime5
		h = bits.RotateLeft32(h, 11) * prime1
	}

	h ^= h >> 15
	h *= prime2
	h ^= h >> 13
	h *= prime3
	h ^= h >> 16
	return h
}

func round(acc, lane uint32) uint32 {
	acc += lane * prime2
	return bits.RotateLeft32(acc, 13) * prime1
}
