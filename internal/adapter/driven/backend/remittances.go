package backend

import (
	"context"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

type remittanceTypesResponse struct {
	RemittanceTypes []model.RemittanceType `json:"remittanceTypes"`
}

type remittancesResponse struct {
	Remittances []model.Remittance `json:"remittances"`
}

type remittanceLinesResponse struct {
	RemittanceLines []model.RemittanceLine `json:"remittanceLines"`
}

type remittanceTypeClientsResponse struct {
	RemittanceTypeClients []model.RemittanceTypeClient `json:"remittanceTypeClients"`
}

type validateRemittanceRequest struct {
	RemittanceID int64 `json:"remittanceId"`
}

type addRemittanceLineRequest struct {
	RemittanceID  int64 `json:"remittanceId"`
	ClientID      int64 `json:"clientId"`
	AmountMinUnit int64 `json:"amountMinUnit"`
}

type addRemittanceTypeClientRequest struct {
	RemittanceTypeID int64 `json:"remittanceTypeId"`
	ClientID         int64 `json:"clientId"`
	AmountMinUnit    int64 `json:"amountMinUnit"`
}

type amountUpdateRequest struct {
	ID            int64 `json:"id"`
	AmountMinUnit int64 `json:"amountMinUnit"`
}

// ListRemittanceTypes retrieves all remittance types.
func (g *Gateway) ListRemittanceTypes(ctx context.Context) ([]model.RemittanceType, error) {
	var resp remittanceTypesResponse
	if err := g.get(ctx, newEndpoint(pathRemittanceTypes), &resp); err != nil {
		return nil, err
	}
	if resp.RemittanceTypes == nil {
		resp.RemittanceTypes = []model.RemittanceType{}
	}
	return resp.RemittanceTypes, nil
}

// ListRemittances retrieves the remittances generated for a remittance type.
func (g *Gateway) ListRemittances(ctx context.Context, remittanceTypeID int64) ([]model.Remittance, error) {
	var resp remittancesResponse
	ep := newEndpoint(pathRemittances, "remittanceTypeId", itoa(remittanceTypeID))
	if err := g.get(ctx, ep, &resp); err != nil {
		return nil, err
	}
	if resp.Remittances == nil {
		resp.Remittances = []model.Remittance{}
	}
	return resp.Remittances, nil
}

// ListRemittanceLines retrieves the charges of a remittance.
func (g *Gateway) ListRemittanceLines(ctx context.Context, remittanceID int64) ([]model.RemittanceLine, error) {
	var resp remittanceLinesResponse
	ep := newEndpoint(pathRemittanceLines, "remittanceId", itoa(remittanceID))
	if err := g.get(ctx, ep, &resp); err != nil {
		return nil, err
	}
	if resp.RemittanceLines == nil {
		resp.RemittanceLines = []model.RemittanceLine{}
	}
	return resp.RemittanceLines, nil
}

// ListRemittanceTypeClients retrieves the default charges of a remittance type.
func (g *Gateway) ListRemittanceTypeClients(ctx context.Context, remittanceTypeID int64) ([]model.RemittanceTypeClient, error) {
	var resp remittanceTypeClientsResponse
	ep := newEndpoint(pathRemittanceTypeClients, "remittanceTypeId", itoa(remittanceTypeID))
	if err := g.get(ctx, ep, &resp); err != nil {
		return nil, err
	}
	if resp.RemittanceTypeClients == nil {
		resp.RemittanceTypeClients = []model.RemittanceTypeClient{}
	}
	return resp.RemittanceTypeClients, nil
}

// ValidateRemittance asks the backend to validate a remittance and produce its file.
func (g *Gateway) ValidateRemittance(ctx context.Context, remittanceID int64) error {
	_, err := g.post(ctx, newEndpoint(pathValidateRemittance), validateRemittanceRequest{RemittanceID: remittanceID})
	return err
}

// AddRemittanceLine adds a client charge to a remittance and returns the new line id.
func (g *Gateway) AddRemittanceLine(ctx context.Context, remittanceID, clientID, amountMinUnit int64) (int64, error) {
	return g.postCreate(ctx, newEndpoint(pathAddRemittanceLine), addRemittanceLineRequest{
		RemittanceID:  remittanceID,
		ClientID:      clientID,
		AmountMinUnit: amountMinUnit,
	})
}

// UpdateRemittanceLine changes the amount of an existing remittance line.
func (g *Gateway) UpdateRemittanceLine(ctx context.Context, lineID, amountMinUnit int64) error {
	_, err := g.post(ctx, newEndpoint(pathUpdateRemittanceLine), amountUpdateRequest{ID: lineID, AmountMinUnit: amountMinUnit})
	return err
}

// AddRemittanceTypeClient assigns a default charge for a client on a remittance type.
func (g *Gateway) AddRemittanceTypeClient(ctx context.Context, remittanceTypeID, clientID, amountMinUnit int64) (int64, error) {
	return g.postCreate(ctx, newEndpoint(pathAddRemittanceTypeClient), addRemittanceTypeClientRequest{
		RemittanceTypeID: remittanceTypeID,
		ClientID:         clientID,
		AmountMinUnit:    amountMinUnit,
	})
}

// UpdateRemittanceTypeClient changes a client's default charge on a remittance type.
func (g *Gateway) UpdateRemittanceTypeClient(ctx context.Context, id, amountMinUnit int64) error {
	_, err := g.post(ctx, newEndpoint(pathUpdateRemittanceTypeClient), amountUpdateRequest{ID: id, AmountMinUnit: amountMinUnit})
	return err
}
