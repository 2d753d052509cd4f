// Package memory provides process-lifetime implementations of driven ports,
// used when no durable storage is configured.
package memory

import (
	"context"
	"sync"

	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps credentials in memory; they are lost on restart.
type CredentialStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewCredentialStore creates an empty CredentialStore.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{values: make(map[string]string)}
}

func (s *CredentialStore) Set(_ context.Context, service, plaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[service] = plaintext
	return nil
}

func (s *CredentialStore) Get(_ context.Context, service string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[service], nil
}

func (s *CredentialStore) Delete(_ context.Context, service string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, service)
	return nil
}
