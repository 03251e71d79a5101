package cache

import "time"

type Cache[K comparable, V any] interface {
	// Get returns a value only while its entry is younger than the TTL.
	Get(key K) (V, bool)
	// GetStale returns a value regardless of age, with the entry's age.
	GetStale(key K) (V, time.Duration, bool)
	Set(key K, value V)
	Delete(key K)
	Keys() []K
	Len() int
	Clear()
}
