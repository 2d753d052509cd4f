package backend

import (
	"context"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

type clientListResponse struct {
	Clients []model.ClientListItem `json:"clients"`
}

type editClientRequest struct {
	OriginalClient string `json:"originalClient"`
	model.NewClientPayload
}

type clientNameRequest struct {
	Client string `json:"client"`
}

// ListClients retrieves the client directory.
func (g *Gateway) ListClients(ctx context.Context) ([]model.ClientListItem, error) {
	var resp clientListResponse
	if err := g.get(ctx, newEndpoint(pathClients), &resp); err != nil {
		return nil, err
	}
	if resp.Clients == nil {
		resp.Clients = []model.ClientListItem{}
	}
	return resp.Clients, nil
}

// GetClient retrieves the full record of a single client by name. Each name
// is cached under its own key.
func (g *Gateway) GetClient(ctx context.Context, name string) (*model.Client, error) {
	var client model.Client
	if err := g.get(ctx, newEndpoint(pathClient, "client", name), &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient registers a new client.
func (g *Gateway) CreateClient(ctx context.Context, payload model.NewClientPayload) error {
	_, err := g.post(ctx, newEndpoint(pathNewClient), payload)
	return err
}

// EditClient replaces the record of the client currently named originalName.
// The payload may rename the client.
func (g *Gateway) EditClient(ctx context.Context, originalName string, payload model.NewClientPayload) error {
	_, err := g.post(ctx, newEndpoint(pathEditClient), editClientRequest{
		OriginalClient:   originalName,
		NewClientPayload: payload,
	})
	return err
}

// ActivateClient marks a client as active for future remittances.
func (g *Gateway) ActivateClient(ctx context.Context, name string) error {
	_, err := g.post(ctx, newEndpoint(pathActivateClient), clientNameRequest{Client: name})
	return err
}

// DeactivateClient marks a client as inactive.
func (g *Gateway) DeactivateClient(ctx context.Context, name string) error {
	_, err := g.post(ctx, newEndpoint(pathDeactivateClient), clientNameRequest{Client: name})
	return err
}
