package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

func TestOverviewService_Summary(t *testing.T) {
	gw := &mockGateway{
		listClients: func(context.Context) ([]model.ClientListItem, error) {
			return []model.ClientListItem{{Client: "Ana"}, {Client: "Pau"}}, nil
		},
		listInvoices: func(context.Context) ([]model.Invoice, error) {
			return sampleInvoices(), nil
		},
		listRemittanceTypes: func(context.Context) ([]model.RemittanceType, error) {
			return []model.RemittanceType{{ID: 1, Name: "Quotes"}}, nil
		},
	}

	overview, err := application.NewOverviewService(gw).Summary(context.Background(), 2024, 3)

	require.NoError(t, err)
	assert.Equal(t, 2, overview.ClientCount)
	assert.Equal(t, 5, overview.InvoiceCount)
	assert.Equal(t, 2, overview.InvoicesThisMonth)
	assert.Equal(t, []string{"Classe", "Lloguer", "Quota"}, overview.InvoiceTypes)
	assert.Len(t, overview.RemittanceTypes, 1)
	assert.Equal(t, 2024, overview.CurrentYear)
	assert.Equal(t, 3, overview.CurrentMonth)
}

func TestOverviewService_SummaryPropagatesAuthFailure(t *testing.T) {
	gw := &mockGateway{
		listClients: func(context.Context) ([]model.ClientListItem, error) {
			return nil, driven.ErrUnauthenticated
		},
		listInvoices: func(context.Context) ([]model.Invoice, error) {
			return nil, nil
		},
		listRemittanceTypes: func(context.Context) ([]model.RemittanceType, error) {
			return nil, nil
		},
	}

	_, err := application.NewOverviewService(gw).Summary(context.Background(), 2024, 3)

	assert.True(t, errors.Is(err, driven.ErrUnauthenticated))
}
