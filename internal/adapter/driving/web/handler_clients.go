package web

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// Clients renders all clients sorted by name.
func (h *Handler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.gateway.ListClients(r.Context())
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list clients")
		return
	}

	rows := toClientRowViewModels(application.SortClients(clients))
	h.render(w, r, http.StatusOK, "Clients", func(string) templ.Component {
		return pages.ClientList(rows)
	})
}

// Responsable renders the clients whose responsible person matches the path.
func (h *Handler) Responsable(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("responsableName")

	clients, err := h.gateway.ListClients(r.Context())
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list clients")
		return
	}

	matched := application.SortClients(application.ClientsForResponsable(clients, name))
	view := vm.ResponsableViewModel{Name: name, Clients: toClientRowViewModels(matched)}
	h.render(w, r, http.StatusOK, name, func(string) templ.Component {
		return pages.Responsable(view)
	})
}

// ClientDetail renders one client with its invoices.
func (h *Handler) ClientDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("clientName")

	client, err := h.gateway.GetClient(r.Context(), name)
	if err != nil {
		h.handleBackendError(w, r, err, "failed to get client")
		return
	}
	if client.Client == "" {
		client.Client = name
	}

	invoices, err := h.gateway.ListInvoices(r.Context())
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list invoices")
		return
	}

	only := []string{client.Client}
	own := application.FilterInvoices(invoices, model.InvoiceFilters{OnlyFromClient: only})
	detail := toClientDetailViewModel(*client, own, application.AvailableTypes(invoices, only))

	h.render(w, r, http.StatusOK, client.Client, func(token string) templ.Component {
		return pages.ClientDetail(detail, token)
	})
}

// NewClientForm renders the empty client form.
func (h *Handler) NewClientForm(w http.ResponseWriter, r *http.Request) {
	form := vm.ClientFormViewModel{Action: "/clients", Fields: clientFormFields(model.NewClientPayload{})}
	h.render(w, r, http.StatusOK, "New client", func(token string) templ.Component {
		return pages.ClientForm(form, token)
	})
}

// CreateClient submits the client form.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	payload := clientPayloadFromForm(r)
	if payload.Client == "" {
		h.rerenderClientForm(w, r, vm.ClientFormViewModel{Action: "/clients", Fields: clientFormFields(payload)})
		return
	}

	h.mutate(w, r, "failed to create client",
		func() string { return clientPath(payload.Client) },
		func(ctx context.Context) error { return h.gateway.CreateClient(ctx, payload) },
	)
}

// EditClientForm renders the client form prefilled from the backend.
func (h *Handler) EditClientForm(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("clientName")

	client, err := h.gateway.GetClient(r.Context(), name)
	if err != nil {
		h.handleBackendError(w, r, err, "failed to get client")
		return
	}
	if client.Client == "" {
		client.Client = name
	}

	form := vm.ClientFormViewModel{
		IsEdit:       true,
		Action:       clientPath(name) + "/edit",
		OriginalName: name,
		Fields:       clientFormFields(clientPayload(*client)),
	}
	h.render(w, r, http.StatusOK, "Edit "+name, func(token string) templ.Component {
		return pages.ClientForm(form, token)
	})
}

// UpdateClient submits the edit form. The original name identifies the
// client even when the name itself changes.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	original := r.PathValue("clientName")
	payload := clientPayloadFromForm(r)
	if payload.Client == "" {
		h.rerenderClientForm(w, r, vm.ClientFormViewModel{
			IsEdit:       true,
			Action:       clientPath(original) + "/edit",
			OriginalName: original,
			Fields:       clientFormFields(payload),
		})
		return
	}

	h.mutate(w, r, "failed to edit client",
		func() string { return clientPath(payload.Client) },
		func(ctx context.Context) error { return h.gateway.EditClient(ctx, original, payload) },
	)
}

// ActivateClient marks a client active.
func (h *Handler) ActivateClient(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("clientName")
	h.mutate(w, r, "failed to activate client",
		func() string { return clientPath(name) },
		func(ctx context.Context) error { return h.gateway.ActivateClient(ctx, name) },
	)
}

// DeactivateClient marks a client inactive.
func (h *Handler) DeactivateClient(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("clientName")
	h.mutate(w, r, "failed to deactivate client",
		func() string { return clientPath(name) },
		func(ctx context.Context) error { return h.gateway.DeactivateClient(ctx, name) },
	)
}

func (h *Handler) rerenderClientForm(w http.ResponseWriter, r *http.Request, form vm.ClientFormViewModel) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}
	form.Error = "The client name is required."
	h.render(w, r, http.StatusBadRequest, "Client", func(token string) templ.Component {
		return pages.ClientForm(form, token)
	})
}
