package chained

import "golang.org/x/exp/slices"

// Entry is a key value pair that is found in each bucket
type Entry[V any] struct {
	Key   string
	Value V
}

// bucket represents a single slot in the HashMap table. Entries are kept
// in insertion order and a key appears at most once.
type bucket[V any] struct {
	entries []Entry[V]
}

// find returns the index of key in the chain, or -1
func (b *bucket[V]) find(key string) int {
	for i := range b.entries {
		if b.entries[i].Key == key {
			return i
		}
	}
	return -1
}

// insert appends a new entry to the end of the chain. It does not check
// for an existing key; callers use find first.
func (b *bucket[V]) insert(key string, val V) {
	b.entries = append(b.entries, Entry[V]{Key: key, Value: val})
}

// removeAt drops the entry at index i, closing the gap without
// reordering the remaining entries
func (b *bucket[V]) removeAt(i int) {
	var zero Entry[V]
	last := len(b.entries) - 1
	b.entries = slices.Delete(b.entries, i, i+1)
	// clear the vacated tail slot so the value can be collected
	b.entries[:last+1][last] = zero
}

func (b *bucket[V]) scan(it Iterator[V]) bool {
	for _, e := range b.entries {
		if !it(e.Key, e.Value) {
			return false
		}
	}
	return true
}

func (b *bucket[V]) len() int {
	return len(b.entries)
}

// clone returns a value-by-value copy of the chain
func (b *bucket[V]) clone() []Entry[V] {
	out := make([]Entry[V], len(b.entries))
	copy(out, b.entries)
	return out
}
