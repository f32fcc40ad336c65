// internal/persist/kv.go
//
// Key-value storage capability and the in-memory implementation.
// This is the only I/O boundary of the persistence layer: get/set/remove
// on string keys, with the persisted value being a single JSON document.
//
// Characteristics of the memory implementation:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package persist

import "sync"

// KV is the storage capability injected into the Gateway.
// Implementations may be backed by memory (this file), SQLite (sqlite.go),
// or anything else with string-keyed durable values.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (value string, ok bool, err error)

	// Set stores or replaces the value under key.
	Set(key, value string) error

	// Remove deletes the key; removing a missing key is not an error.
	Remove(key string) error
}

// memoryKV is an in-memory map-based KV implementation.
type memoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryKV constructs a new in-memory KV store.
func NewMemoryKV() KV {
	return &memoryKV{m: make(map[string]string)}
}

func (s *memoryKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memoryKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memoryKV) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
