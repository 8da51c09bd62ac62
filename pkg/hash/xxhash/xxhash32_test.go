package xxhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum32(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0x02cc5d05},
		{"a", 0x550d7456},
		{"abc", 0x32d153ff},
		{"Nobody inspects the spammish repetition", 0xe2293b2f},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Checksum32([]byte(tt.in), 0), "Checksum32(%q)", tt.in)
	}
}

func TestSum32(t *testing.T) {
	for _, n := range []int{0, 3, 4, 15, 16, 17, 31, 32, 33, 100} {
		b := []byte(strings.Repeat("x", n))
		assert.Equal(t, Checksum32(b, DefaultSeed), Sum32(b))
	}
	assert.NotEqual(t, Sum32([]byte("apple")), Sum32([]byte("Apple")))
	assert.NotEqual(t, Checksum32([]byte("apple"), 0), Checksum32([]byte("apple"), 1))
}

func BenchmarkSum32(b *testing.B) {
	key := []byte("0123456789abcdef0123456789abcdef")
	b.SetBytes(int64(len(key)))
	for i := 0; i < b.N; i++ {
		Sum32(key)
	}
}
