// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// PageMeta holds the data every page layout needs.
type PageMeta struct {
	Title     string
	CSRFToken string
	BackURL   string // Empty when there is nowhere to go back to.
	LoggedIn  bool
}

// DashboardViewModel holds the summary counters shown on the home page.
type DashboardViewModel struct {
	ClientCount       int
	InvoiceCount      int
	InvoicesThisMonth int
	MonthLabel        string // "YYYY-MM"
	MonthInvoicesPath string
	InvoiceTypes      []string
	RemittanceTypes   []RemittanceTypeViewModel
}

// ClientRowViewModel holds presentation-ready data for a client list row.
type ClientRowViewModel struct {
	Name            string
	Responsable     string
	ResponsablePath string
	Email           string
	Phone           string
	DetailPath      string
}

// ClientDetailViewModel holds presentation-ready data for the client page.
type ClientDetailViewModel struct {
	Name            string
	Responsable     string
	ResponsablePath string
	Address1        string
	Address2        string
	Email           string
	Phone           string
	IDType          string
	IDValue         string
	ClientReference string
	MandateRef      string
	MandateSignedAt string
	IBAN            string

	EditPath       string
	ActivatePath   string
	DeactivatePath string

	Invoices InvoiceTableViewModel
	Types    []string
}

// ClientFormViewModel holds the values and targets of the create/edit form.
type ClientFormViewModel struct {
	IsEdit       bool
	Action       string
	OriginalName string
	Error        string
	Fields       []FormFieldViewModel
}

// FormFieldViewModel is a single labelled text input.
type FormFieldViewModel struct {
	Name     string
	Label    string
	Value    string
	Required bool
}

// InvoiceRowViewModel holds presentation-ready data for an invoice row.
type InvoiceRowViewModel struct {
	Number          string
	Type            string
	Client          string
	ClientPath      string
	DescriptionHTML string // Sanitized HTML rendered from markdown.
	Amount          string
	Date            string
	Link            string
}

// InvoiceTableViewModel is a list of invoice rows with totals.
type InvoiceTableViewModel struct {
	Rows  []InvoiceRowViewModel
	Count int
	Total string
}

// InvoiceFilterViewModel holds the invoice search form state and its result.
type InvoiceFilterViewModel struct {
	Query  string
	Type   string
	Date   string
	Client string
	Types  []string
	Table  InvoiceTableViewModel
}

// ResponsableViewModel lists the clients under one responsible person.
type ResponsableViewModel struct {
	Name    string
	Clients []ClientRowViewModel
}

// RemittanceTypeViewModel holds presentation-ready data for a remittance type.
type RemittanceTypeViewModel struct {
	ID            int64
	Name          string
	Icon          string
	GenerationDay string
	Path          string
}

// RemittanceRowViewModel holds presentation-ready data for a remittance.
type RemittanceRowViewModel struct {
	ID          int64
	Period      string
	Status      string
	StatusLabel string
	IsValidated bool
	CreatedAt   string
	ValidatedAt string
	FileURL     string
	Path        string
}

// TypeClientViewModel is a client's default charge for a remittance type.
type TypeClientViewModel struct {
	ID         int64
	ClientID   int64
	ClientName string
	IsActive   bool
	Amount     string
	UpdatePath string
}

// RemittanceTypeDetailViewModel holds the remittances and default charges of
// one remittance type.
type RemittanceTypeDetailViewModel struct {
	Type          RemittanceTypeViewModel
	Remittances   []RemittanceRowViewModel
	Clients       []TypeClientViewModel
	AddClientPath string
}

// RemittanceLineViewModel holds presentation-ready data for a remittance line.
type RemittanceLineViewModel struct {
	ID         int64
	ClientID   int64
	ClientName string
	IsActive   bool
	Amount     string
	UpdatePath string
}

// ClientOptionViewModel is an entry of a client select box.
type ClientOptionViewModel struct {
	ID   int64
	Name string
}

// RemittanceDetailViewModel holds the lines of a remittance and its actions.
type RemittanceDetailViewModel struct {
	TypeName      string
	TypePath      string
	Remittance    RemittanceRowViewModel
	Lines         []RemittanceLineViewModel
	Total         string
	CanEdit       bool
	ValidatePath  string
	AddLinePath   string
	ClientOptions []ClientOptionViewModel
}

// ErrorViewModel is shown when a backend request fails.
type ErrorViewModel struct {
	Status  int
	Message string
}
