package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

func TestClientsForResponsable(t *testing.T) {
	clients := []model.ClientListItem{
		{Client: "Ana Puig", Responsable: "Jordi Puig"},
		{Client: "Pau Puig", Responsable: " jordi puig "},
		{Client: "Marta Vila", Responsable: "Laia Vila"},
	}

	got := application.ClientsForResponsable(clients, "Jordi Puig")
	assert.Len(t, got, 2)
	assert.Equal(t, "Ana Puig", got[0].Client)
	assert.Equal(t, "Pau Puig", got[1].Client)

	assert.Empty(t, application.ClientsForResponsable(clients, "Nobody"))
	assert.NotNil(t, application.ClientsForResponsable(clients, ""))
}

func TestSortClients(t *testing.T) {
	clients := []model.ClientListItem{{Client: "pau"}, {Client: "Ana"}, {Client: "marta"}}

	got := application.SortClients(clients)

	assert.Equal(t, "Ana", got[0].Client)
	assert.Equal(t, "marta", got[1].Client)
	assert.Equal(t, "pau", got[2].Client)
	assert.Equal(t, "pau", clients[0].Client, "input must not be reordered")
}
