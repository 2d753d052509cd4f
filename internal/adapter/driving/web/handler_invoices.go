package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// Invoices renders the invoice search page. Filters come from the query
// string: q, type, date (YYYY-MM) and client.
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.gateway.ListInvoices(r.Context())
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list invoices")
		return
	}

	q := r.URL.Query()
	filters := model.InvoiceFilters{
		SearchQuery: q.Get("q"),
		TypeFilter:  q.Get("type"),
		DateFilter:  q.Get("date"),
	}
	if client := q.Get("client"); client != "" {
		filters.OnlyFromClient = []string{client}
	}

	view := vm.InvoiceFilterViewModel{
		Query:  filters.SearchQuery,
		Type:   filters.TypeFilter,
		Date:   filters.DateFilter,
		Client: q.Get("client"),
		Types:  application.AvailableTypes(invoices, filters.OnlyFromClient),
		Table:  toInvoiceTableViewModel(application.FilterInvoices(invoices, filters)),
	}
	h.render(w, r, http.StatusOK, "Invoices", func(string) templ.Component {
		return pages.Invoices(view)
	})
}
