package playerok

import "sync"

// IdentityMap keeps at most one instance per key for the lifetime of a
// session. It never fetches, never expires and never evicts; Clear is the
// only way entries leave the map.
//
// Set is last-write-wins. Concurrent writers to the same key race and the
// surviving value is whichever Set ran last.
type IdentityMap[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewIdentityMap creates an empty identity map.
func NewIdentityMap[K comparable, V any]() *IdentityMap[K, V] {
	return &IdentityMap[K, V]{
		entries: make(map[K]V),
	}
}

// Get returns the cached instance for key and whether it was present.
func (m *IdentityMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]

	return value, ok
}

// Set inserts or overwrites the instance for key.
func (m *IdentityMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
}

// Clear removes every entry. Calling it more than once is harmless.
func (m *IdentityMap[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.entries)
}

// Len returns the number of cached instances.
func (m *IdentityMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
