package model

// RemittanceType groups remittances generated for the same kind of charge.
type RemittanceType struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	GenerationDay *int   `json:"generationDay,omitempty"`
}

// Remittance is a monthly batch of direct debit charges.
type Remittance struct {
	ID               int64            `json:"id"`
	Status           RemittanceStatus `json:"status"`
	Month            int              `json:"month"`
	Year             int              `json:"year"`
	RemittanceTypeID *int64           `json:"remittanceTypeId,omitempty"`
	CreatedAt        string           `json:"createdAt,omitempty"`
	ValidatedAt      *string          `json:"validatedAt,omitempty"`
	FileURL          *string          `json:"fileUrl,omitempty"`
}

// IsValidated reports whether the remittance no longer accepts line changes.
func (r Remittance) IsValidated() bool {
	return r.Status == RemittanceStatusValidated
}

// RemittanceLine is a single client charge within a remittance. Amounts are
// expressed in minor currency units (cents).
type RemittanceLine struct {
	ID            int64           `json:"id"`
	RemittanceID  int64           `json:"remittanceId"`
	AmountMinUnit int64           `json:"amountMinUnit"`
	Client        ClientReference `json:"client"`
}

// RemittanceTypeClient is the default charge a client receives for a remittance type.
type RemittanceTypeClient struct {
	ID               int64           `json:"id"`
	RemittanceTypeID int64           `json:"remittanceTypeId"`
	AmountMinUnit    int64           `json:"amountMinUnit"`
	Client           ClientReference `json:"client"`
}
