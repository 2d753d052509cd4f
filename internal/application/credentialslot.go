package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialSource = (*CredentialSlot)(nil)

// CredentialSlot is the single durable slot holding the admin credential.
// The backend gateway reads it before each request and revokes it on 403;
// AuthService fills and clears it on login and logout.
type CredentialSlot struct {
	store driven.CredentialStore
}

// NewCredentialSlot creates a slot backed by store.
func NewCredentialSlot(store driven.CredentialStore) *CredentialSlot {
	return &CredentialSlot{store: store}
}

// Credential returns the stored credential. An empty value counts as absent.
func (s *CredentialSlot) Credential(ctx context.Context) (string, bool, error) {
	value, err := s.store.Get(ctx, model.AdminKeyService)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", model.AdminKeyService, err)
	}
	return value, value != "", nil
}

// Revoke removes the stored credential.
func (s *CredentialSlot) Revoke(ctx context.Context) error {
	if err := s.store.Delete(ctx, model.AdminKeyService); err != nil {
		return fmt.Errorf("removing %s: %w", model.AdminKeyService, err)
	}
	return nil
}

func (s *CredentialSlot) put(ctx context.Context, value string) error {
	if err := s.store.Set(ctx, model.AdminKeyService, value); err != nil {
		return fmt.Errorf("storing %s: %w", model.AdminKeyService, err)
	}
	return nil
}
