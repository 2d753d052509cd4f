package model

import "github.com/shopspring/decimal"

// Invoice is an immutable invoice record as served by the backend.
// Date uses the business format dd-mm-yyyy.
type Invoice struct {
	Number      string          `json:"Número de Factura"`
	Type        string          `json:"Tipus"`
	Client      string          `json:"Client"`
	Description string          `json:"Descripció"`
	Amount      decimal.Decimal `json:"Import"`
	Date        string          `json:"Data"`
	Link        string          `json:"Link"`
}

// InvoiceFilters holds the criteria applied by the invoice filter engine.
// The date criterion is either DateFilter as a combined "YYYY-MM" token or
// the separate Year and Month fields; DateFilter wins when both are set.
type InvoiceFilters struct {
	SearchQuery    string
	TypeFilter     string
	DateFilter     string
	Year           int
	Month          int
	OnlyFromClient []string
}
