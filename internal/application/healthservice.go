package application

import (
	"context"
	"errors"

	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// BackendStatus classifies the console's view of the backend.
type BackendStatus string

const (
	BackendStatusOK              BackendStatus = "ok"
	BackendStatusUnauthenticated BackendStatus = "unauthenticated"
	BackendStatusRejected        BackendStatus = "rejected"
	BackendStatusUnreachable     BackendStatus = "unreachable"
	BackendStatusFailing         BackendStatus = "failing"
)

// HealthReport is the result of a backend health probe.
type HealthReport struct {
	Status           BackendStatus
	CredentialStored bool
}

// HealthService probes the backend through the auth check for the health
// endpoint. It depends only on AuthService.
type HealthService struct {
	auth *AuthService
}

// NewHealthService creates a new HealthService.
func NewHealthService(auth *AuthService) *HealthService {
	return &HealthService{auth: auth}
}

// Report probes the backend. Only a failure to read the local credential
// slot is returned as an error; backend failures are folded into the status.
func (s *HealthService) Report(ctx context.Context) (*HealthReport, error) {
	stored, err := s.auth.HasCredential(ctx)
	if err != nil {
		return nil, err
	}
	if !stored {
		return &HealthReport{Status: BackendStatusUnauthenticated}, nil
	}

	ok, err := s.auth.IsAuthenticated(ctx)
	return &HealthReport{Status: classifyProbe(ok, err), CredentialStored: true}, nil
}

// classifyProbe maps a probe outcome to a status.
// Priority: unreachable > rejected > failing > ok.
func classifyProbe(ok bool, err error) BackendStatus {
	var netErr *driven.NetworkError
	switch {
	case errors.As(err, &netErr):
		return BackendStatusUnreachable
	case errors.Is(err, driven.ErrAuthRevoked), errors.Is(err, driven.ErrUnauthenticated):
		return BackendStatusRejected
	case err != nil:
		return BackendStatusFailing
	case !ok:
		return BackendStatusRejected
	default:
		return BackendStatusOK
	}
}
