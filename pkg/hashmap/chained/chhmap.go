package chained

import (
	"math"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// HashMap represents an open hashing (separate chaining) hashtable
// implementation mapping non-empty string keys to values of type V.
// A HashMap is not safe for concurrent use; see Sharded for that.
type HashMap[V any] struct {
	hash    HashFunc
	policy  ResizePolicy
	log     *zap.Logger
	count   int
	resizes int
	buckets []bucket[V]
}

// New returns a new, empty HashMap. Without options the table starts with
// MinBuckets buckets, hashes with FNV1a32 and uses DefaultResizePolicy.
func New[V any](opts ...Option) *HashMap[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newHashMap[V](o)
}

func newHashMap[V any](o options) *HashMap[V] {
	if !o.policy.Disabled {
		if o.policy.GrowAt <= 0 {
			o.policy.GrowAt = DefaultGrowAt
		}
		// a shrink threshold above half the grow threshold would undo
		// a grow on the next delete
		if o.policy.ShrinkAt*2 > o.policy.GrowAt {
			o.policy.ShrinkAt = math.Min(DefaultShrinkAt, o.policy.GrowAt/4)
		}
	}
	return &HashMap[V]{
		hash:    o.hash,
		policy:  o.policy,
		log:     o.log,
		buckets: make([]bucket[V], o.buckets),
	}
}

// index returns the bucket the key belongs to under the current bucket count
func (m *HashMap[V]) index(key string) int {
	return bucketIndex(m.hash(key), len(m.buckets))
}

// Put inserts a key value entry, or overwrites the value if the key is
// already present. Overwriting never triggers a resize.
func (m *HashMap[V]) Put(key string, val V) error {
	if err := checkKey(key, "put"); err != nil {
		return err
	}
	b := &m.buckets[m.index(key)]
	if i := b.find(key); i >= 0 {
		b.entries[i].Value = val
		return nil
	}
	b.insert(key, val)
	m.count++
	m.checkResize()
	return nil
}

// Get returns the value for a given key, or returns false if none could be found
func (m *HashMap[V]) Get(key string) (V, bool, error) {
	var zero V
	if err := checkKey(key, "get"); err != nil {
		return zero, false, err
	}
	b := &m.buckets[m.index(key)]
	if i := b.find(key); i >= 0 {
		return b.entries[i].Value, true, nil
	}
	return zero, false, nil
}

// Has reports whether an entry for key exists
func (m *HashMap[V]) Has(key string) (bool, error) {
	if err := checkKey(key, "has"); err != nil {
		return false, err
	}
	return m.buckets[m.index(key)].find(key) >= 0, nil
}

// Del removes the entry for a given key and reports whether one was removed
func (m *HashMap[V]) Del(key string) (bool, error) {
	if err := checkKey(key, "del"); err != nil {
		return false, err
	}
	b := &m.buckets[m.index(key)]
	i := b.find(key)
	if i < 0 {
		return false, nil
	}
	b.removeAt(i)
	m.count--
	m.checkResize()
	return true, nil
}

// checkResize consults the resize policy and rehashes when it asks for a
// different bucket count
func (m *HashMap[V]) checkResize() {
	n := m.policy.next(m.count, len(m.buckets))
	if n != len(m.buckets) {
		m.resize(n)
	}
}

// resize makes a new bucket slice with the new size, rehashes every entry
// into it, in bucket then chain order, and then drops the old one
func (m *HashMap[V]) resize(n int) {
	old := len(m.buckets)
	buckets := make([]bucket[V], n)
	for i := range m.buckets {
		for _, e := range m.buckets[i].entries {
			j := bucketIndex(m.hash(e.Key), n)
			buckets[j].entries = append(buckets[j].entries, e)
		}
	}
	m.buckets = buckets
	m.resizes++
	m.log.Debug("hashmap resized",
		zap.Int("from", old),
		zap.Int("to", n),
		zap.Int("elements", m.count),
	)
}

// Len returns the number of entries currently in the HashMap
func (m *HashMap[V]) Len() int {
	return m.count
}

// BucketCount returns the current number of buckets
func (m *HashMap[V]) BucketCount() int {
	return len(m.buckets)
}

// PercentFull returns the current load factor of the HashMap
func (m *HashMap[V]) PercentFull() float64 {
	return float64(m.count) / float64(len(m.buckets))
}

// Buckets returns a copy of the bucket layout. Every entry is copied, so
// changing the result has no effect on the map.
func (m *HashMap[V]) Buckets() [][]Entry[V] {
	out := make([][]Entry[V], len(m.buckets))
	for i := range m.buckets {
		out[i] = m.buckets[i].clone()
	}
	return out
}

// Iterator is an iterator function type
type Iterator[V any] func(key string, val V) bool

// Range takes an Iterator and ranges the HashMap as long as the iterator
// function continues to be true. Range is not safe to perform an insert
// or remove operation while ranging!
func (m *HashMap[V]) Range(it Iterator[V]) {
	for i := range m.buckets {
		if !m.buckets[i].scan(it) {
			return
		}
	}
}

// Stats returns a summary of the current table layout
func (m *HashMap[V]) Stats() Stats {
	st := Stats{
		Elements:   m.count,
		Buckets:    len(m.buckets),
		LoadFactor: m.PercentFull(),
		Resizes:    m.resizes,
	}
	for i := range m.buckets {
		n := m.buckets[i].len()
		if n == 0 {
			st.EmptyBuckets++
		}
		if n > st.LongestChain {
			st.LongestChain = n
		}
	}
	return st
}

// Stats describes the shape of a table at a point in time
type Stats struct {
	Elements     int
	Buckets      int
	LoadFactor   float64
	LongestChain int
	EmptyBuckets int
	Resizes      int
}

// MarshalLogObject lets Stats be logged with zap.Object
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("elements", s.Elements)
	enc.AddInt("buckets", s.Buckets)
	enc.AddFloat64("load_factor", s.LoadFactor)
	enc.AddInt("longest_chain", s.LongestChain)
	enc.AddInt("empty_buckets", s.EmptyBuckets)
	enc.AddInt("resizes", s.Resizes)
	return nil
}
