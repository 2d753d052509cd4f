package backend

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointCacheKey_PathOnly(t *testing.T) {
	assert.Equal(t, "/viuelpadel/clients", newEndpoint(pathClients).CacheKey())
}

func TestEndpointCacheKey_IncludesQuery(t *testing.T) {
	ep := newEndpoint(pathClient, "client", "Ana Puig")
	assert.Equal(t, "/viuelpadel/client?client=Ana+Puig", ep.CacheKey())
}

func TestEndpointCacheKey_ParameterOrderIndependent(t *testing.T) {
	a := Endpoint{Path: "/x", Query: url.Values{}}
	a.Query.Add("b", "2")
	a.Query.Add("a", "1")

	b := newEndpoint("/x", "a", "1", "b", "2")

	assert.Equal(t, a.CacheKey(), b.CacheKey())
}

func TestEndpointCacheKey_DistinctParamsDiffer(t *testing.T) {
	one := newEndpoint(pathRemittances, "remittanceTypeId", itoa(1))
	two := newEndpoint(pathRemittances, "remittanceTypeId", itoa(2))

	assert.NotEqual(t, one.CacheKey(), two.CacheKey())
}

func TestEndpointURL_JoinsBase(t *testing.T) {
	ep := newEndpoint(pathRemittanceLines, "remittanceId", itoa(7))
	assert.Equal(t, "https://example.test/webhook/viuelpadel/remittance-lines?remittanceId=7", ep.URL("https://example.test/webhook"))
}
