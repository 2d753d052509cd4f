package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// HomePath is where the console lands after login, logout and revocation.
const HomePath = "/"

// AuthService owns the admin credential. Login and Logout are the only
// operations that write the credential slot; everything else is read-only.
// Navigating to HomePath afterwards is left to the driving adapter.
type AuthService struct {
	slot   *CredentialSlot
	prober driven.AuthProber
	logger *slog.Logger
}

// NewAuthService creates an AuthService. prober verifies the stored
// credential against the backend.
func NewAuthService(slot *CredentialSlot, prober driven.AuthProber, logger *slog.Logger) *AuthService {
	return &AuthService{
		slot:   slot,
		prober: prober,
		logger: logger,
	}
}

// Credential returns the stored credential without touching the network.
func (s *AuthService) Credential(ctx context.Context) (string, bool, error) {
	return s.slot.Credential(ctx)
}

// HasCredential reports whether a credential is stored. It does not prove
// the credential is valid.
func (s *AuthService) HasCredential(ctx context.Context) (bool, error) {
	_, ok, err := s.slot.Credential(ctx)
	return ok, err
}

// IsAuthenticated returns false without any network call when no credential
// is stored. Otherwise it returns the backend's verdict on the credential;
// probe failures are returned as errors, never as false.
func (s *AuthService) IsAuthenticated(ctx context.Context) (bool, error) {
	ok, err := s.HasCredential(ctx)
	if err != nil || !ok {
		return false, err
	}
	return s.prober.CheckAuth(ctx)
}

// Login trims and stores token. The token is not validated; an invalid one is
// discovered on the first backend request, which revokes it.
func (s *AuthService) Login(ctx context.Context, token string) error {
	if err := s.slot.put(ctx, strings.TrimSpace(token)); err != nil {
		return err
	}
	s.logger.Info("admin credential stored")
	return nil
}

// Logout clears the stored credential. Logging out twice is harmless.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.slot.Revoke(ctx); err != nil {
		return err
	}
	s.logger.Info("admin credential cleared")
	return nil
}
