package chained

const (
	MinBuckets      = 3
	DefaultGrowAt   = 0.8
	DefaultShrinkAt = 0.2
)

// ResizePolicy decides when the table is rehashed into a new bucket count.
// The table doubles when the load factor rises above GrowAt and halves
// (never below MinBuckets) when it falls below ShrinkAt.
type ResizePolicy struct {
	GrowAt   float64
	ShrinkAt float64
	Disabled bool
}

// DefaultResizePolicy returns the grow at 80%, shrink at 20% policy
func DefaultResizePolicy() ResizePolicy {
	return ResizePolicy{
		GrowAt:   DefaultGrowAt,
		ShrinkAt: DefaultShrinkAt,
	}
}

// FixedSize is a policy that never resizes the table
func FixedSize() ResizePolicy {
	return ResizePolicy{Disabled: true}
}

// next returns the bucket count the table should have for the given number
// of elements. It returns buckets unchanged when no resize is needed.
func (p ResizePolicy) next(elements, buckets int) int {
	if p.Disabled || buckets < 1 {
		return buckets
	}
	lf := float64(elements) / float64(buckets)
	switch {
	case lf > p.GrowAt:
		return buckets * 2
	case lf < p.ShrinkAt:
		n := buckets / 2
		if n < MinBuckets {
			n = MinBuckets
		}
		if n > buckets {
			// a table built smaller than the floor never grows on shrink
			return buckets
		}
		return n
	}
	return buckets
}
