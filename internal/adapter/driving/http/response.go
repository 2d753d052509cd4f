package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// InvoiceResponse is the JSON representation of an invoice. Amount keeps the
// backend's decimal precision as a string.
type InvoiceResponse struct {
	Number      string `json:"number"`
	Type        string `json:"type"`
	Client      string `json:"client"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Link        string `json:"link,omitempty"`
}

// InvoiceListResponse wraps a filtered invoice list with its totals.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Count    int               `json:"count"`
	Total    string            `json:"total"`
}

// ClientResponse is the JSON representation of a client list entry.
type ClientResponse struct {
	Name        string `json:"name"`
	Responsable string `json:"responsable"`
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// RemittanceTypeResponse is the JSON representation of a remittance type.
type RemittanceTypeResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	GenerationDay *int   `json:"generation_day"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status           string `json:"status"`
	Backend          string `json:"backend"`
	CredentialStored bool   `json:"credential_stored"`
	Time             string `json:"time"`
}

// toInvoiceResponse converts a domain Invoice to its JSON representation.
func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		Number:      inv.Number,
		Type:        inv.Type,
		Client:      inv.Client,
		Description: inv.Description,
		Amount:      inv.Amount.StringFixed(2),
		Date:        inv.Date,
		Link:        inv.Link,
	}
}

// toClientResponse converts a domain ClientListItem to its JSON representation.
func toClientResponse(c model.ClientListItem) ClientResponse {
	return ClientResponse{
		Name:        c.Client,
		Responsable: c.Responsable,
		Address1:    c.Address1,
		Address2:    c.Address2,
		Email:       c.Email,
		Phone:       c.Phone.String(),
	}
}

// toRemittanceTypeResponse converts a domain RemittanceType to its JSON representation.
func toRemittanceTypeResponse(rt model.RemittanceType) RemittanceTypeResponse {
	return RemittanceTypeResponse{
		ID:            rt.ID,
		Name:          rt.Name,
		Icon:          rt.Icon,
		GenerationDay: rt.GenerationDay,
	}
}
