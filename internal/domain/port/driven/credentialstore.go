package driven

import (
	"context"
	"errors"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore operations when
// VIUELPADEL_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set VIUELPADEL_SECRET_KEY")

// CredentialStore defines the driven port for durable credential persistence.
// The adapter layer is responsible for any encryption; this interface
// operates on plaintext values at the domain boundary.
type CredentialStore interface {
	// Set stores or replaces the credential for the given service.
	Set(ctx context.Context, service, plaintext string) error

	// Get retrieves the plaintext credential for the given service.
	// Returns ("", nil) if no credential exists for that service.
	Get(ctx context.Context, service string) (string, error)

	// Delete removes the credential for the given service. Deleting a
	// missing credential is not an error.
	Delete(ctx context.Context, service string) error
}

// CredentialSource is the narrow view of the admin credential that the
// backend gateway needs: read it before every request and drop it when the
// backend rejects it.
type CredentialSource interface {
	// Credential returns the stored credential and whether one is present.
	Credential(ctx context.Context) (string, bool, error)

	// Revoke removes the stored credential.
	Revoke(ctx context.Context) error
}
