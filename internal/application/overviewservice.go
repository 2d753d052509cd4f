package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// Overview is the dashboard summary shown on the home page.
type Overview struct {
	ClientCount       int
	InvoiceCount      int
	InvoiceTypes      []string
	RemittanceTypes   []model.RemittanceType
	InvoicesThisMonth int
	CurrentYear       int
	CurrentMonth      int
}

// OverviewService assembles the dashboard from several backend reads.
type OverviewService struct {
	gateway driven.BackendGateway
}

// NewOverviewService creates an OverviewService.
func NewOverviewService(gateway driven.BackendGateway) *OverviewService {
	return &OverviewService{gateway: gateway}
}

// Summary fetches clients, invoices and remittance types concurrently. year
// and month select the "this month" invoice count. The first failure cancels
// the remaining reads and is returned.
func (s *OverviewService) Summary(ctx context.Context, year, month int) (*Overview, error) {
	var (
		clients         []model.ClientListItem
		invoices        []model.Invoice
		remittanceTypes []model.RemittanceType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.gateway.ListClients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.gateway.ListInvoices(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		remittanceTypes, err = s.gateway.ListRemittanceTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading overview: %w", err)
	}

	thisMonth := FilterInvoices(invoices, model.InvoiceFilters{Year: year, Month: month})

	return &Overview{
		ClientCount:       len(clients),
		InvoiceCount:      len(invoices),
		InvoiceTypes:      AvailableTypes(invoices, nil),
		RemittanceTypes:   remittanceTypes,
		InvoicesThisMonth: len(thisMonth),
		CurrentYear:       year,
		CurrentMonth:      month,
	}, nil
}
