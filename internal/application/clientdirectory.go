package application

import (
	"slices"
	"strings"

	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
)

// ClientsForResponsable returns the clients whose responsible person matches
// name, ignoring case and surrounding whitespace.
func ClientsForResponsable(clients []model.ClientListItem, name string) []model.ClientListItem {
	name = strings.TrimSpace(name)
	out := []model.ClientListItem{}
	if name == "" {
		return out
	}
	for _, c := range clients {
		if strings.EqualFold(strings.TrimSpace(c.Responsable), name) {
			out = append(out, c)
		}
	}
	return out
}

// SortClients orders clients by name without modifying the input.
func SortClients(clients []model.ClientListItem) []model.ClientListItem {
	out := slices.Clone(clients)
	slices.SortStableFunc(out, func(a, b model.ClientListItem) int {
		return strings.Compare(strings.ToLower(a.Client), strings.ToLower(b.Client))
	})
	return out
}
