package application_test

import (
	"context"
	"sync/atomic"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// --- Mock implementations ---

type mockProber struct {
	calls  atomic.Int64
	result bool
	err    error
}

func (m *mockProber) CheckAuth(context.Context) (bool, error) {
	m.calls.Add(1)
	return m.result, m.err
}

// mockGateway implements driven.BackendGateway. Only the read functions used
// by the services under test are configurable.
type mockGateway struct {
	mockProber
	listClients         func(ctx context.Context) ([]model.ClientListItem, error)
	listInvoices        func(ctx context.Context) ([]model.Invoice, error)
	listRemittanceTypes func(ctx context.Context) ([]model.RemittanceType, error)
	cleared             int
}

func (m *mockGateway) ListClients(ctx context.Context) ([]model.ClientListItem, error) {
	return m.listClients(ctx)
}

func (m *mockGateway) GetClient(_ context.Context, _ string) (*model.Client, error) {
	return nil, nil
}

func (m *mockGateway) CreateClient(_ context.Context, _ model.NewClientPayload) error { return nil }

func (m *mockGateway) EditClient(_ context.Context, _ string, _ model.NewClientPayload) error {
	return nil
}

func (m *mockGateway) ActivateClient(_ context.Context, _ string) error   { return nil }
func (m *mockGateway) DeactivateClient(_ context.Context, _ string) error { return nil }

func (m *mockGateway) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	return m.listInvoices(ctx)
}

func (m *mockGateway) ListRemittanceTypes(ctx context.Context) ([]model.RemittanceType, error) {
	return m.listRemittanceTypes(ctx)
}

func (m *mockGateway) ListRemittances(_ context.Context, _ int64) ([]model.Remittance, error) {
	return nil, nil
}

func (m *mockGateway) ListRemittanceLines(_ context.Context, _ int64) ([]model.RemittanceLine, error) {
	return nil, nil
}

func (m *mockGateway) ListRemittanceTypeClients(_ context.Context, _ int64) ([]model.RemittanceTypeClient, error) {
	return nil, nil
}

func (m *mockGateway) ValidateRemittance(_ context.Context, _ int64) error { return nil }

func (m *mockGateway) AddRemittanceLine(_ context.Context, _, _, _ int64) (int64, error) {
	return 0, nil
}

func (m *mockGateway) UpdateRemittanceLine(_ context.Context, _, _ int64) error { return nil }

func (m *mockGateway) AddRemittanceTypeClient(_ context.Context, _, _, _ int64) (int64, error) {
	return 0, nil
}

func (m *mockGateway) UpdateRemittanceTypeClient(_ context.Context, _, _ int64) error { return nil }

func (m *mockGateway) ClearCache() { m.cleared++ }
