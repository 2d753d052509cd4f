// Package cache implements the ResponseCache port on top of httpcache's
// in-memory store.
package cache

import (
	"sync"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ResponseCache = (*Store)(nil)

// Store is a process-lifetime key/value cache of response bodies. It has no
// size bound and no expiry; entries live until Clear.
type Store struct {
	// mu guards the backing pointer swapped by Clear. MemoryCache locks its
	// own map, so Set only needs the read lock.
	mu      sync.RWMutex
	backing *httpcache.MemoryCache
}

// NewStore creates an empty Store. Each console session owns its own Store.
func NewStore() *Store {
	return &Store{backing: httpcache.NewMemoryCache()}
}

// Get returns the cached body for key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backing.Get(key)
}

// Set stores body under key, replacing any previous entry.
func (s *Store) Set(key string, body []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.backing.Set(key, body)
}

// Has reports whether key is cached.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Clear drops every entry by swapping in a fresh backing store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backing = httpcache.NewMemoryCache()
}
