package chained

import "go.uber.org/zap"

type options struct {
	hash    HashFunc
	buckets int
	policy  ResizePolicy
	log     *zap.Logger
}

func defaultOptions() options {
	return options{
		hash:    FNV1a32,
		buckets: MinBuckets,
		policy:  DefaultResizePolicy(),
		log:     zap.NewNop(),
	}
}

// Option configures a HashMap or a Sharded map
type Option func(*options)

// WithHashFunc sets the hash function. A nil fn keeps the default.
func WithHashFunc(fn HashFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.hash = fn
		}
	}
}

// WithInitialBuckets sets the starting bucket count, MinBuckets at least
func WithInitialBuckets(n int) Option {
	return func(o *options) {
		if n < MinBuckets {
			n = MinBuckets
		}
		o.buckets = n
	}
}

// WithFixedSize creates a table with exactly n buckets that is never
// resized, no matter the load factor.
func WithFixedSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = MinBuckets
		}
		o.buckets = n
		o.policy = FixedSize()
	}
}

// WithResizePolicy replaces the default resize thresholds
func WithResizePolicy(p ResizePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets the logger resize events are written to
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
