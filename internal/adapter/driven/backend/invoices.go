package backend

import (
	"context"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

type invoiceListResponse struct {
	Invoices []model.Invoice `json:"invoices"`
}

// ListInvoices retrieves every invoice. Filtering happens locally in the
// application layer.
func (g *Gateway) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	var resp invoiceListResponse
	if err := g.get(ctx, newEndpoint(pathInvoices), &resp); err != nil {
		return nil, err
	}
	if resp.Invoices == nil {
		resp.Invoices = []model.Invoice{}
	}
	return resp.Invoices, nil
}
