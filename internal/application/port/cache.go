package port

// Cache is a bounded in-memory tier keyed by K. Implementations must be safe
// for concurrent use since resolvers run from many goroutines at once.
type Cache[K comparable, V any] interface {
	// Get returns the value and true on a hit.
	Get(key K) (V, bool)

	// Set stores value, possibly evicting the least recently used entry.
	Set(key K, value V)

	// Len returns the number of cached entries.
	Len() int
}
