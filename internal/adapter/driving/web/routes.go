package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web console routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Session.
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)

	// Clients.
	mux.HandleFunc("GET /clients", h.Clients)
	mux.HandleFunc("GET /clients/new", h.NewClientForm)
	mux.HandleFunc("POST /clients", h.CreateClient)
	mux.HandleFunc("GET /client/{clientName}", h.ClientDetail)
	mux.HandleFunc("GET /client/{clientName}/edit", h.EditClientForm)
	mux.HandleFunc("POST /client/{clientName}/edit", h.UpdateClient)
	mux.HandleFunc("POST /client/{clientName}/activate", h.ActivateClient)
	mux.HandleFunc("POST /client/{clientName}/deactivate", h.DeactivateClient)
	mux.HandleFunc("GET /responsable/{responsableName}", h.Responsable)

	// Invoices.
	mux.HandleFunc("GET /invoices", h.Invoices)

	// Remittances.
	mux.HandleFunc("GET /remittances", h.RemittanceTypes)
	mux.HandleFunc("GET /remittances/{typeID}", h.RemittanceType)
	mux.HandleFunc("POST /remittances/{typeID}/clients", h.AddRemittanceTypeClient)
	mux.HandleFunc("POST /remittances/{typeID}/clients/{typeClientID}", h.UpdateRemittanceTypeClient)
	mux.HandleFunc("GET /remittance/{typeID}/{remittanceID}", h.Remittance)
	mux.HandleFunc("POST /remittance/{typeID}/{remittanceID}/validate", h.ValidateRemittance)
	mux.HandleFunc("POST /remittance/{typeID}/{remittanceID}/lines", h.AddRemittanceLine)
	mux.HandleFunc("POST /remittance/{typeID}/{remittanceID}/lines/{lineID}", h.UpdateRemittanceLine)
}
