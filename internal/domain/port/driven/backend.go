package driven

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

var (
	// ErrUnauthenticated is returned when no admin credential is stored.
	// No network request is made in that case.
	ErrUnauthenticated = errors.New("no admin credential stored")

	// ErrAuthRevoked matches a RequestFailedError with status 403. By the
	// time the caller sees it the stored credential has already been removed.
	ErrAuthRevoked = errors.New("admin credential rejected by backend")
)

// RequestFailedError reports a backend response with a non-success status.
type RequestFailedError struct {
	Method   string
	Endpoint string
	Status   int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Endpoint, e.Status)
}

// Is makes a 403 response match ErrAuthRevoked.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrAuthRevoked && e.Status == http.StatusForbidden
}

// NetworkError reports a transport failure where no response was received.
type NetworkError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthProber verifies the stored credential against the backend.
type AuthProber interface {
	CheckAuth(ctx context.Context) (bool, error)
}

// BackendGateway defines the driven port for the remote webhook backend.
// Read operations are memoized until ClearCache is called; writes never
// touch the cache.
type BackendGateway interface {
	AuthProber

	ListClients(ctx context.Context) ([]model.ClientListItem, error)
	GetClient(ctx context.Context, name string) (*model.Client, error)
	CreateClient(ctx context.Context, payload model.NewClientPayload) error
	EditClient(ctx context.Context, originalName string, payload model.NewClientPayload) error
	ActivateClient(ctx context.Context, name string) error
	DeactivateClient(ctx context.Context, name string) error

	ListInvoices(ctx context.Context) ([]model.Invoice, error)

	ListRemittanceTypes(ctx context.Context) ([]model.RemittanceType, error)
	ListRemittances(ctx context.Context, remittanceTypeID int64) ([]model.Remittance, error)
	ListRemittanceLines(ctx context.Context, remittanceID int64) ([]model.RemittanceLine, error)
	ListRemittanceTypeClients(ctx context.Context, remittanceTypeID int64) ([]model.RemittanceTypeClient, error)
	ValidateRemittance(ctx context.Context, remittanceID int64) error
	AddRemittanceLine(ctx context.Context, remittanceID, clientID, amountMinUnit int64) (int64, error)
	UpdateRemittanceLine(ctx context.Context, lineID, amountMinUnit int64) error
	AddRemittanceTypeClient(ctx context.Context, remittanceTypeID, clientID, amountMinUnit int64) (int64, error)
	UpdateRemittanceTypeClient(ctx context.Context, id, amountMinUnit int64) error

	// ClearCache drops every memoized read.
	ClearCache()
}
