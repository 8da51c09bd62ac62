package hashtable

// Table is an interface for this package. It is implemented by the
// chained HashMap and by its Sharded wrapper.
type Table[V any] interface {
	Put(key string, val V) error
	Get(key string) (V, bool, error)
	Has(key string) (bool, error)
	Del(key string) (bool, error)
	Len() int
}
