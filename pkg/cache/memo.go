// Package cache provides small bounded memoization caches.
//
// A Memo is a pure key→value memoization: the first Get for a key runs the
// compute function and stores the result; later Gets return the stored value.
// Entries are never mutated after creation. The cache is bounded; once full,
// the oldest entry is evicted (FIFO). A bound of zero disables memoization
// entirely, so every Get recomputes.
//
// Memos back the process-local caches of the render pipeline (font faces,
// rounded-panel rasters, logo rasters). They are injectable so tests can
// reset or bypass them deterministically.
package cache

import (
	"sync"

	"github.com/matzehuels/dashgen/pkg/observability"
)

// Memo is a bounded key→value memoization cache.
// It is safe for concurrent use.
type Memo[K comparable, V any] struct {
	kind string // label reported to cache hooks

	mu      sync.Mutex
	max     int
	entries map[K]V
	order   []K // insertion order, oldest first
}

// New creates a memo holding at most maxEntries values.
// The kind labels this cache in observability events.
// A maxEntries of zero (or less) disables memoization.
func New[K comparable, V any](kind string, maxEntries int) *Memo[K, V] {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Memo[K, V]{
		kind:    kind,
		max:     maxEntries,
		entries: make(map[K]V, maxEntries),
	}
}

// Get returns the memoized value for key, computing and storing it on a miss.
// A compute error is returned as-is and nothing is stored.
func (m *Memo[K, V]) Get(key K, compute func() (V, error)) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.entries[key]; ok {
		observability.Cache().OnHit(m.kind)
		return v, nil
	}
	observability.Cache().OnMiss(m.kind)

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	if m.max == 0 {
		return v, nil
	}

	if len(m.entries) >= m.max {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
		observability.Cache().OnEvict(m.kind)
	}
	m.entries[key] = v
	m.order = append(m.order, key)

	return v, nil
}

// Len returns the number of stored entries.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Reset discards all stored entries.
func (m *Memo[K, V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[K]V, m.max)
	m.order = nil
}
