package chained

import (
	"math/bits"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultShardCount = 16

	// fibonacci hashing multiplier, 2^32 / golden ratio
	shardMix = 0x9E3779B1
)

type shard[V any] struct {
	mu sync.RWMutex
	hm *HashMap[V]
}

// Sharded spreads keys over a power of two number of HashMaps, each one
// guarded by its own lock, so it can be shared between goroutines.
type Sharded[V any] struct {
	shift  uint
	hash   HashFunc
	count  *atomic.Int64
	shards []*shard[V]
}

// NewSharded returns a new Sharded map with the specified number of shards
// rounded up to a power of two. A size below 1 uses defaultShardCount.
// The options are applied to every shard.
func NewSharded[V any](size int, opts ...Option) *Sharded[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	shCount := alignShardCount(size)
	s := &Sharded[V]{
		shift:  32 - uint(bits.TrailingZeros(uint(shCount))),
		hash:   o.hash,
		count:  atomic.NewInt64(0),
		shards: make([]*shard[V], shCount),
	}
	o.log.Debug("new sharded hashmap",
		zap.Int("shards", shCount),
		zap.Int("buckets_per_shard", o.buckets),
	)
	for i := range s.shards {
		s.shards[i] = &shard[V]{
			hm: newHashMap[V](o),
		}
	}
	return s
}

func alignShardCount(size int) int {
	if size < 1 {
		return defaultShardCount
	}
	count := 1
	for count < size {
		count *= 2
	}
	return count
}

// getShard picks a shard from the high bits of the mixed hash sum. Sums
// that never reach the high bits (short keys under Poly31) still spread.
func (s *Sharded[V]) getShard(key string) *shard[V] {
	return s.shards[(s.hash(key)*shardMix)>>s.shift]
}

func (s *Sharded[V]) Put(key string, val V) error {
	sh := s.getShard(key)
	sh.mu.Lock()
	before := sh.hm.Len()
	err := sh.hm.Put(key, val)
	added := sh.hm.Len() - before
	sh.mu.Unlock()
	if added > 0 {
		s.count.Inc()
	}
	return err
}

func (s *Sharded[V]) Get(key string) (V, bool, error) {
	sh := s.getShard(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.hm.Get(key)
}

func (s *Sharded[V]) Has(key string) (bool, error) {
	sh := s.getShard(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.hm.Has(key)
}

func (s *Sharded[V]) Del(key string) (bool, error) {
	sh := s.getShard(key)
	sh.mu.Lock()
	ok, err := sh.hm.Del(key)
	sh.mu.Unlock()
	if ok {
		s.count.Dec()
	}
	return ok, err
}

func (s *Sharded[V]) Len() int {
	return int(s.count.Load())
}

// Range ranges every shard in turn, holding the shard's read lock while
// it is visited. The iterator must not call back into the map.
func (s *Sharded[V]) Range(it Iterator[V]) {
	for _, sh := range s.shards {
		sh.mu.RLock()
		more := true
		sh.hm.Range(func(key string, val V) bool {
			more = it(key, val)
			return more
		})
		sh.mu.RUnlock()
		if !more {
			return
		}
	}
}

// Buckets returns a copy of every shard's buckets, laid out shard by shard
func (s *Sharded[V]) Buckets() [][]Entry[V] {
	var out [][]Entry[V]
	for _, sh := range s.shards {
		sh.mu.RLock()
		out = append(out, sh.hm.Buckets()...)
		sh.mu.RUnlock()
	}
	return out
}

// Stats returns the stats of each shard
func (s *Sharded[V]) Stats() []Stats {
	st := make([]Stats, len(s.shards))
	for i, sh := range s.shards {
		sh.mu.RLock()
		st[i] = sh.hm.Stats()
		sh.mu.RUnlock()
	}
	return st
}
