package web

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	vm "github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// Paths are built here so templates never concatenate user data into URLs.

func clientPath(name string) string {
	return "/client/" + url.PathEscape(name)
}

func responsablePath(name string) string {
	if name == "" {
		return ""
	}
	return "/responsable/" + url.PathEscape(name)
}

func remittanceTypePath(typeID int64) string {
	return fmt.Sprintf("/remittances/%d", typeID)
}

func remittancePath(typeID, remittanceID int64) string {
	return fmt.Sprintf("/remittance/%d/%d", typeID, remittanceID)
}

// formatEuros renders a decimal amount with two decimals.
func formatEuros(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// formatCents renders an amount in minor units as euros.
func formatCents(cents int64) string {
	return formatEuros(decimal.New(cents, -2))
}

// centsInput renders minor units as the value of an amount input.
func centsInput(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func statusLabel(s model.RemittanceStatus) string {
	switch s {
	case model.RemittanceStatusPending:
		return "Pending"
	case model.RemittanceStatusProcessingValidation:
		return "Validating"
	case model.RemittanceStatusValidated:
		return "Validated"
	default:
		return string(s)
	}
}

func toClientRowViewModel(c model.ClientListItem) vm.ClientRowViewModel {
	return vm.ClientRowViewModel{
		Name:            c.Client,
		Responsable:     c.Responsable,
		ResponsablePath: responsablePath(c.Responsable),
		Email:           c.Email,
		Phone:           c.Phone.String(),
		DetailPath:      clientPath(c.Client),
	}
}

func toClientRowViewModels(clients []model.ClientListItem) []vm.ClientRowViewModel {
	rows := make([]vm.ClientRowViewModel, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, toClientRowViewModel(c))
	}
	return rows
}

// toClientDetailViewModel converts a client and its invoices. invoices must
// already be narrowed to the client.
func toClientDetailViewModel(c model.Client, invoices []model.Invoice, types []string) vm.ClientDetailViewModel {
	base := clientPath(c.Client)
	return vm.ClientDetailViewModel{
		Name:            c.Client,
		Responsable:     c.Responsable,
		ResponsablePath: responsablePath(c.Responsable),
		Address1:        c.Address1,
		Address2:        c.Address2,
		Email:           c.Email,
		Phone:           c.Phone,
		IDType:          c.IDType,
		IDValue:         c.IDValue,
		ClientReference: c.ClientReference,
		MandateRef:      c.MandateRef,
		MandateSignedAt: c.MandateSignedAt,
		IBAN:            c.IBAN,
		EditPath:        base + "/edit",
		ActivatePath:    base + "/activate",
		DeactivatePath:  base + "/deactivate",
		Invoices:        toInvoiceTableViewModel(invoices),
		Types:           types,
	}
}

// clientFormFields lists the editable client fields in display order.
func clientFormFields(p model.NewClientPayload) []vm.FormFieldViewModel {
	return []vm.FormFieldViewModel{
		{Name: "client", Label: "Name", Value: p.Client, Required: true},
		{Name: "responsable", Label: "Responsible person", Value: p.Responsable},
		{Name: "address1", Label: "Address line 1", Value: p.Address1},
		{Name: "address2", Label: "Address line 2", Value: p.Address2},
		{Name: "email", Label: "Email", Value: p.Email},
		{Name: "phone", Label: "Phone", Value: p.Phone},
		{Name: "id_type", Label: "ID type", Value: p.IDType},
		{Name: "id_value", Label: "ID number", Value: p.IDValue},
		{Name: "client_reference", Label: "Client reference", Value: p.ClientReference},
		{Name: "mandate_ref", Label: "Mandate reference", Value: p.MandateRef},
		{Name: "mandate_signed_at", Label: "Mandate signed on", Value: p.MandateSignedAt},
		{Name: "iban", Label: "IBAN", Value: p.IBAN},
	}
}

func clientPayload(c model.Client) model.NewClientPayload {
	return model.NewClientPayload{
		Client:          c.Client,
		Responsable:     c.Responsable,
		Address1:        c.Address1,
		Address2:        c.Address2,
		Email:           c.Email,
		Phone:           c.Phone,
		IDType:          c.IDType,
		IDValue:         c.IDValue,
		ClientReference: c.ClientReference,
		MandateRef:      c.MandateRef,
		MandateSignedAt: c.MandateSignedAt,
		IBAN:            c.IBAN,
	}
}

func toInvoiceRowViewModel(inv model.Invoice) vm.InvoiceRowViewModel {
	return vm.InvoiceRowViewModel{
		Number:          inv.Number,
		Type:            inv.Type,
		Client:          inv.Client,
		ClientPath:      clientPath(inv.Client),
		DescriptionHTML: RenderMarkdown(inv.Description),
		Amount:          formatEuros(inv.Amount),
		Date:            inv.Date,
		Link:            inv.Link,
	}
}

func toInvoiceTableViewModel(invoices []model.Invoice) vm.InvoiceTableViewModel {
	table := vm.InvoiceTableViewModel{
		Rows:  make([]vm.InvoiceRowViewModel, 0, len(invoices)),
		Count: len(invoices),
	}
	total := decimal.Zero
	for _, inv := range invoices {
		table.Rows = append(table.Rows, toInvoiceRowViewModel(inv))
		total = total.Add(inv.Amount)
	}
	table.Total = formatEuros(total)
	return table
}

func toRemittanceTypeViewModel(rt model.RemittanceType) vm.RemittanceTypeViewModel {
	day := ""
	if rt.GenerationDay != nil {
		day = strconv.Itoa(*rt.GenerationDay)
	}
	return vm.RemittanceTypeViewModel{
		ID:            rt.ID,
		Name:          rt.Name,
		Icon:          rt.Icon,
		GenerationDay: day,
		Path:          remittanceTypePath(rt.ID),
	}
}

func toRemittanceTypeViewModels(types []model.RemittanceType) []vm.RemittanceTypeViewModel {
	out := make([]vm.RemittanceTypeViewModel, 0, len(types))
	for _, rt := range types {
		out = append(out, toRemittanceTypeViewModel(rt))
	}
	return out
}

func toRemittanceRowViewModel(typeID int64, r model.Remittance) vm.RemittanceRowViewModel {
	row := vm.RemittanceRowViewModel{
		ID:          r.ID,
		Period:      fmt.Sprintf("%04d-%02d", r.Year, r.Month),
		Status:      string(r.Status),
		StatusLabel: statusLabel(r.Status),
		IsValidated: r.IsValidated(),
		CreatedAt:   r.CreatedAt,
		Path:        remittancePath(typeID, r.ID),
	}
	if r.ValidatedAt != nil {
		row.ValidatedAt = *r.ValidatedAt
	}
	if r.FileURL != nil {
		row.FileURL = *r.FileURL
	}
	return row
}

func toTypeClientViewModel(tc model.RemittanceTypeClient) vm.TypeClientViewModel {
	return vm.TypeClientViewModel{
		ID:         tc.ID,
		ClientID:   tc.Client.ID,
		ClientName: tc.Client.Name,
		IsActive:   tc.Client.IsActive,
		Amount:     centsInput(tc.AmountMinUnit),
		UpdatePath: fmt.Sprintf("%s/clients/%d", remittanceTypePath(tc.RemittanceTypeID), tc.ID),
	}
}

func toRemittanceTypeDetailViewModel(
	rt model.RemittanceType,
	remittances []model.Remittance,
	typeClients []model.RemittanceTypeClient,
) vm.RemittanceTypeDetailViewModel {
	detail := vm.RemittanceTypeDetailViewModel{
		Type:          toRemittanceTypeViewModel(rt),
		Remittances:   make([]vm.RemittanceRowViewModel, 0, len(remittances)),
		Clients:       make([]vm.TypeClientViewModel, 0, len(typeClients)),
		AddClientPath: remittanceTypePath(rt.ID) + "/clients",
	}
	for _, r := range remittances {
		detail.Remittances = append(detail.Remittances, toRemittanceRowViewModel(rt.ID, r))
	}
	for _, tc := range typeClients {
		detail.Clients = append(detail.Clients, toTypeClientViewModel(tc))
	}
	return detail
}

// toRemittanceDetailViewModel converts a remittance with its lines. Client
// options come from the type's default charges, the only place the console
// learns client ids.
func toRemittanceDetailViewModel(
	rt model.RemittanceType,
	r model.Remittance,
	lines []model.RemittanceLine,
	typeClients []model.RemittanceTypeClient,
) vm.RemittanceDetailViewModel {
	base := remittancePath(rt.ID, r.ID)
	detail := vm.RemittanceDetailViewModel{
		TypeName:      rt.Name,
		TypePath:      remittanceTypePath(rt.ID),
		Remittance:    toRemittanceRowViewModel(rt.ID, r),
		Lines:         make([]vm.RemittanceLineViewModel, 0, len(lines)),
		CanEdit:       !r.IsValidated(),
		ValidatePath:  base + "/validate",
		AddLinePath:   base + "/lines",
		ClientOptions: make([]vm.ClientOptionViewModel, 0, len(typeClients)),
	}

	var total int64
	for _, l := range lines {
		detail.Lines = append(detail.Lines, vm.RemittanceLineViewModel{
			ID:         l.ID,
			ClientID:   l.Client.ID,
			ClientName: l.Client.Name,
			IsActive:   l.Client.IsActive,
			Amount:     centsInput(l.AmountMinUnit),
			UpdatePath: fmt.Sprintf("%s/lines/%d", base, l.ID),
		})
		total += l.AmountMinUnit
	}
	detail.Total = formatCents(total)

	for _, tc := range typeClients {
		detail.ClientOptions = append(detail.ClientOptions, vm.ClientOptionViewModel{ID: tc.Client.ID, Name: tc.Client.Name})
	}
	return detail
}
