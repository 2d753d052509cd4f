package backend

import (
	"net/url"
	"strconv"
)

// Endpoint identifies one logical backend operation: a path under the base
// URL plus, for reads, its query parameters.
type Endpoint struct {
	Path  string
	Query url.Values
}

// newEndpoint builds an Endpoint from a path and alternating key/value pairs.
func newEndpoint(path string, kv ...string) Endpoint {
	ep := Endpoint{Path: path}
	if len(kv) == 0 {
		return ep
	}
	ep.Query = make(url.Values, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		ep.Query.Add(kv[i], kv[i+1])
	}
	return ep
}

// CacheKey is the canonical cache key of the endpoint. url.Values.Encode sorts
// by key, so the key depends only on the path and the parameter set, never on
// the order parameters were added in.
func (e Endpoint) CacheKey() string {
	if len(e.Query) == 0 {
		return e.Path
	}
	return e.Path + "?" + e.Query.Encode()
}

// URL joins the endpoint onto baseURL.
func (e Endpoint) URL(baseURL string) string {
	return baseURL + e.CacheKey()
}

const (
	pathCheckAuth                  = "/viuelpadel/check-auth"
	pathClients                    = "/viuelpadel/clients"
	pathClient                     = "/viuelpadel/client"
	pathNewClient                  = "/viuelpadel/new-client"
	pathEditClient                 = "/viuelpadel/edit-client"
	pathActivateClient             = "/viuelpadel/activate-client"
	pathDeactivateClient           = "/viuelpadel/deactivate-client"
	pathInvoices                   = "/viuelpadel/invoices"
	pathRemittanceTypes            = "/viuelpadel/remittance-types"
	pathRemittances                = "/viuelpadel/remittances"
	pathRemittanceLines            = "/viuelpadel/remittance-lines"
	pathRemittanceTypeClients      = "/viuelpadel/remittance-type-clients"
	pathValidateRemittance         = "/viuelpadel/validate-remittance"
	pathAddRemittanceLine          = "/viuelpadel/add-remittance-line"
	pathUpdateRemittanceLine       = "/viuelpadel/update-remittance-line"
	pathAddRemittanceTypeClient    = "/viuelpadel/add-remittance-type-client"
	pathUpdateRemittanceTypeClient = "/viuelpadel/update-remittance-type-client"
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
