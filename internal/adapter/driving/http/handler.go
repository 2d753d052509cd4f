package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the read-only JSON API.
type Handler struct {
	gateway   driven.BackendGateway
	healthSvc *application.HealthService
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	gateway driven.BackendGateway,
	healthSvc *application.HealthService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		gateway:   gateway,
		healthSvc: healthSvc,
		logger:    logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/invoices", h.ListInvoices)
	mux.HandleFunc("GET /api/v1/invoices/types", h.ListInvoiceTypes)
	mux.HandleFunc("GET /api/v1/clients", h.ListClients)
	mux.HandleFunc("GET /api/v1/responsables/{name}/clients", h.ListResponsableClients)
	mux.HandleFunc("GET /api/v1/remittance-types", h.ListRemittanceTypes)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with the standard middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// ListInvoices returns invoices narrowed by the query parameters q, type,
// date (YYYY-MM), year, month and client (repeatable). Malformed date
// parameters are ignored rather than rejected.
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.gateway.ListInvoices(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "failed to list invoices")
		return
	}

	filtered := application.FilterInvoices(invoices, invoiceFiltersFromQuery(r))

	resp := InvoiceListResponse{
		Invoices: make([]InvoiceResponse, 0, len(filtered)),
		Count:    len(filtered),
	}
	total := decimal.Zero
	for _, inv := range filtered {
		resp.Invoices = append(resp.Invoices, toInvoiceResponse(inv))
		total = total.Add(inv.Amount)
	}
	resp.Total = total.StringFixed(2)

	writeJSON(w, http.StatusOK, resp)
}

// ListInvoiceTypes returns the distinct invoice types, optionally narrowed
// to the clients named by the repeatable client parameter.
func (h *Handler) ListInvoiceTypes(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.gateway.ListInvoices(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "failed to list invoice types")
		return
	}

	writeJSON(w, http.StatusOK, application.AvailableTypes(invoices, r.URL.Query()["client"]))
}

// ListClients returns all clients sorted by name.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.gateway.ListClients(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "failed to list clients")
		return
	}

	writeJSON(w, http.StatusOK, toClientResponses(application.SortClients(clients)))
}

// ListResponsableClients returns the clients under one responsible person.
func (h *Handler) ListResponsableClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.gateway.ListClients(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "failed to list clients")
		return
	}

	matched := application.ClientsForResponsable(clients, r.PathValue("name"))
	writeJSON(w, http.StatusOK, toClientResponses(application.SortClients(matched)))
}

// ListRemittanceTypes returns all remittance types.
func (h *Handler) ListRemittanceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.gateway.ListRemittanceTypes(r.Context())
	if err != nil {
		h.writeBackendError(w, err, "failed to list remittance types")
		return
	}

	resp := make([]RemittanceTypeResponse, 0, len(types))
	for _, rt := range types {
		resp = append(resp, toRemittanceTypeResponse(rt))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health reports process liveness plus the backend's view of the stored
// credential. The process is healthy even when the backend is not, so the
// status code is 200 unless the credential slot itself cannot be read.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report, err := h.healthSvc.Report(r.Context())
	if err != nil {
		h.logger.Error("failed to read credential slot", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:           "ok",
		Backend:          string(report.Status),
		CredentialStored: report.CredentialStored,
		Time:             time.Now().UTC().Format(time.RFC3339),
	})
}

// writeBackendError maps gateway failures to API responses. Missing or
// rejected credentials are 401 so API clients know to log in again through
// the console.
func (h *Handler) writeBackendError(w http.ResponseWriter, err error, msg string) {
	var (
		failed *driven.RequestFailedError
		netErr *driven.NetworkError
	)

	switch {
	case errors.Is(err, driven.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "not logged in")
	case errors.Is(err, driven.ErrAuthRevoked):
		writeError(w, http.StatusUnauthorized, "credential rejected by backend")
	case errors.As(err, &failed):
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusBadGateway, "backend returned status "+strconv.Itoa(failed.Status))
	case errors.As(err, &netErr):
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusBadGateway, "backend unreachable")
	default:
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// invoiceFiltersFromQuery builds filters from query parameters. Non-numeric
// year or month values become zero, which disables the date stage.
func invoiceFiltersFromQuery(r *http.Request) model.InvoiceFilters {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	return model.InvoiceFilters{
		SearchQuery:    q.Get("q"),
		TypeFilter:     q.Get("type"),
		DateFilter:     q.Get("date"),
		Year:           year,
		Month:          month,
		OnlyFromClient: q["client"],
	}
}

func toClientResponses(clients []model.ClientListItem) []ClientResponse {
	resp := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, toClientResponse(c))
	}
	return resp
}
