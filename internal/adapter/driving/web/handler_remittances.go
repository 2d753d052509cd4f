package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// RemittanceTypes renders all remittance types.
func (h *Handler) RemittanceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.gateway.ListRemittanceTypes(r.Context())
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list remittance types")
		return
	}

	view := toRemittanceTypeViewModels(types)
	h.render(w, r, http.StatusOK, "Remittances", func(string) templ.Component {
		return pages.RemittanceTypeList(view)
	})
}

// RemittanceType renders the remittances and default charges of one type.
func (h *Handler) RemittanceType(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.lookupRemittanceType(w, r)
	if !ok {
		return
	}

	remittances, err := h.gateway.ListRemittances(r.Context(), rt.ID)
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list remittances")
		return
	}
	typeClients, err := h.gateway.ListRemittanceTypeClients(r.Context(), rt.ID)
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list remittance type clients")
		return
	}

	view := toRemittanceTypeDetailViewModel(*rt, remittances, typeClients)
	h.render(w, r, http.StatusOK, rt.Name, func(token string) templ.Component {
		return pages.RemittanceTypeDetail(view, token)
	})
}

// Remittance renders the lines of one remittance.
func (h *Handler) Remittance(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.lookupRemittanceType(w, r)
	if !ok {
		return
	}
	remittanceID, err := parseID("remittanceID", r.PathValue("remittanceID"))
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Remittance not found.")
		return
	}

	remittances, err := h.gateway.ListRemittances(r.Context(), rt.ID)
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list remittances")
		return
	}
	var remittance *model.Remittance
	for i := range remittances {
		if remittances[i].ID == remittanceID {
			remittance = &remittances[i]
			break
		}
	}
	if remittance == nil {
		h.renderError(w, r, http.StatusNotFound, "Remittance not found.")
		return
	}

	lines, err := h.gateway.ListRemittanceLines(r.Context(), remittanceID)
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list remittance lines")
		return
	}
	typeClients, err := h.gateway.ListRemittanceTypeClients(r.Context(), rt.ID)
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list remittance type clients")
		return
	}

	view := toRemittanceDetailViewModel(*rt, *remittance, lines, typeClients)
	title := fmt.Sprintf("%s %s", rt.Name, view.Remittance.Period)
	h.render(w, r, http.StatusOK, title, func(token string) templ.Component {
		return pages.RemittanceDetail(view, token)
	})
}

// ValidateRemittance asks the backend to validate a remittance.
func (h *Handler) ValidateRemittance(w http.ResponseWriter, r *http.Request) {
	typeID, remittanceID, ok := h.remittancePathIDs(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "failed to validate remittance",
		func() string { return remittancePath(typeID, remittanceID) },
		func(ctx context.Context) error { return h.gateway.ValidateRemittance(ctx, remittanceID) },
	)
}

// AddRemittanceLine adds a client charge to a remittance.
func (h *Handler) AddRemittanceLine(w http.ResponseWriter, r *http.Request) {
	typeID, remittanceID, ok := h.remittancePathIDs(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "failed to add remittance line",
		func() string { return remittancePath(typeID, remittanceID) },
		func(ctx context.Context) error {
			clientID, err := parseID("client_id", r.FormValue("client_id"))
			if err != nil {
				return err
			}
			amount, err := parseAmount(r.FormValue("amount"))
			if err != nil {
				return err
			}
			id, err := h.gateway.AddRemittanceLine(ctx, remittanceID, clientID, amount)
			if err != nil {
				return err
			}
			h.logger.Info("remittance line added", "remittance_id", remittanceID, "line_id", id)
			return nil
		},
	)
}

// UpdateRemittanceLine changes the amount of a remittance line.
func (h *Handler) UpdateRemittanceLine(w http.ResponseWriter, r *http.Request) {
	typeID, remittanceID, ok := h.remittancePathIDs(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "failed to update remittance line",
		func() string { return remittancePath(typeID, remittanceID) },
		func(ctx context.Context) error {
			lineID, err := parseID("lineID", r.PathValue("lineID"))
			if err != nil {
				return err
			}
			amount, err := parseAmount(r.FormValue("amount"))
			if err != nil {
				return err
			}
			return h.gateway.UpdateRemittanceLine(ctx, lineID, amount)
		},
	)
}

// AddRemittanceTypeClient adds a default charge to a remittance type.
func (h *Handler) AddRemittanceTypeClient(w http.ResponseWriter, r *http.Request) {
	typeID, err := parseID("typeID", r.PathValue("typeID"))
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Remittance type not found.")
		return
	}
	h.mutate(w, r, "failed to add remittance type client",
		func() string { return remittanceTypePath(typeID) },
		func(ctx context.Context) error {
			clientID, err := parseID("client_id", r.FormValue("client_id"))
			if err != nil {
				return err
			}
			amount, err := parseAmount(r.FormValue("amount"))
			if err != nil {
				return err
			}
			id, err := h.gateway.AddRemittanceTypeClient(ctx, typeID, clientID, amount)
			if err != nil {
				return err
			}
			h.logger.Info("remittance type client added", "remittance_type_id", typeID, "id", id)
			return nil
		},
	)
}

// UpdateRemittanceTypeClient changes a default charge.
func (h *Handler) UpdateRemittanceTypeClient(w http.ResponseWriter, r *http.Request) {
	typeID, err := parseID("typeID", r.PathValue("typeID"))
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Remittance type not found.")
		return
	}
	h.mutate(w, r, "failed to update remittance type client",
		func() string { return remittanceTypePath(typeID) },
		func(ctx context.Context) error {
			id, err := parseID("typeClientID", r.PathValue("typeClientID"))
			if err != nil {
				return err
			}
			amount, err := parseAmount(r.FormValue("amount"))
			if err != nil {
				return err
			}
			return h.gateway.UpdateRemittanceTypeClient(ctx, id, amount)
		},
	)
}

// lookupRemittanceType resolves the typeID path value against the backend.
// On failure the response has been written and ok is false.
func (h *Handler) lookupRemittanceType(w http.ResponseWriter, r *http.Request) (*model.RemittanceType, bool) {
	typeID, err := parseID("typeID", r.PathValue("typeID"))
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Remittance type not found.")
		return nil, false
	}

	types, err := h.gateway.ListRemittanceTypes(r.Context())
	if err != nil {
		h.handleBackendError(w, r, err, "failed to list remittance types")
		return nil, false
	}
	for i := range types {
		if types[i].ID == typeID {
			return &types[i], true
		}
	}

	h.renderError(w, r, http.StatusNotFound, "Remittance type not found.")
	return nil, false
}

func (h *Handler) remittancePathIDs(w http.ResponseWriter, r *http.Request) (typeID, remittanceID int64, ok bool) {
	typeID, err := parseID("typeID", r.PathValue("typeID"))
	if err == nil {
		remittanceID, err = parseID("remittanceID", r.PathValue("remittanceID"))
	}
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "Remittance not found.")
		return 0, 0, false
	}
	return typeID, remittanceID, true
}
