package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/backend"
	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/cache"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

// fakeCredentials is an in-memory CredentialSource that counts revocations.
type fakeCredentials struct {
	mu      sync.Mutex
	value   string
	revoked int
}

func (f *fakeCredentials) Credential(context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.value != "", nil
}

func (f *fakeCredentials) Revoke(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = ""
	f.revoked++
	return nil
}

func (f *fakeCredentials) revocations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked
}

// countingServer wraps handler and counts requests per path.
type countingServer struct {
	mu    sync.Mutex
	calls map[string]int
	total atomic.Int64
}

func (c *countingServer) count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[path]
}

func newTestGateway(t *testing.T, creds *fakeCredentials, handler http.HandlerFunc, opts ...backend.Option) (*backend.Gateway, *cache.Store, *countingServer, *httptest.Server) {
	t.Helper()

	counter := &countingServer{calls: map[string]int{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.mu.Lock()
		counter.calls[r.URL.Path]++
		counter.mu.Unlock()
		counter.total.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	store := cache.NewStore()
	opts = append([]backend.Option{backend.WithHTTPClient(server.Client())}, opts...)
	gw := backend.NewGateway(server.URL+"/", creds, store, opts...)

	return gw, store, counter, server
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListClients_CachesRepeatedReads(t *testing.T) {
	creds := &fakeCredentials{value: "secret"}
	gw, _, counter, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"clients":[{"Client":"Ana","Nom Responsable":"Joan","Email":"ana@example.com","Telèfon":600111222}]}`))
	})
	ctx := context.Background()

	for range 3 {
		clients, err := gw.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, "Ana", clients[0].Client)
		assert.Equal(t, "Joan", clients[0].Responsable)
		assert.Equal(t, "600111222", clients[0].Phone.String())
	}

	assert.Equal(t, 1, counter.count("/viuelpadel/clients"))
}

func TestClearCache_ForcesExactlyOneMoreRequest(t *testing.T) {
	creds := &fakeCredentials{value: "secret"}
	gw, _, counter, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"invoices":[]}`))
	})
	ctx := context.Background()

	_, err := gw.ListInvoices(ctx)
	require.NoError(t, err)

	gw.ClearCache()

	for range 3 {
		_, err = gw.ListInvoices(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, counter.count("/viuelpadel/invoices"))
}

func TestGetClient_DistinctParamsDoNotCollide(t *testing.T) {
	creds := &fakeCredentials{value: "secret"}
	gw, _, counter, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.Client{Client: r.URL.Query().Get("client"), IBAN: "ES00"})
	})
	ctx := context.Background()

	ana, err := gw.GetClient(ctx, "Ana")
	require.NoError(t, err)
	pau, err := gw.GetClient(ctx, "Pau")
	require.NoError(t, err)
	again, err := gw.GetClient(ctx, "Ana")
	require.NoError(t, err)

	assert.Equal(t, "Ana", ana.Client)
	assert.Equal(t, "Pau", pau.Client)
	assert.Equal(t, "Ana", again.Client)
	assert.Equal(t, 2, counter.count("/viuelpadel/client"))
}

func TestPost_NeverReadsOrWritesCache(t *testing.T) {
	creds := &fakeCredentials{value: "secret"}
	gw, store, counter, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})
	ctx := context.Background()

	payload := model.NewClientPayload{Client: "Nou"}
	require.NoError(t, gw.CreateClient(ctx, payload))
	require.NoError(t, gw.CreateClient(ctx, payload))

	assert.Equal(t, 2, counter.count("/viuelpadel/new-client"))
	assert.False(t, store.Has("/viuelpadel/new-client"))
}

func TestPost_DoesNotInvalidateCachedReads(t *testing.T) {
	creds := &fakeCredentials{value: "secret"}
	gw, store, counter, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/viuelpadel/clients" {
			w.Write([]byte(`{"clients":[]}`))
			return
		}
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	_, err := gw.ListClients(ctx)
	require.NoError(t, err)
	require.NoError(t, gw.ActivateClient(ctx, "Ana"))
	_, err = gw.ListClients(ctx)
	require.NoError(t, err)

	assert.True(t, store.Has("/viuelpadel/clients"))
	assert.Equal(t, 1, counter.count("/viuelpadel/clients"))
	assert.Equal(t, 1, counter.count("/viuelpadel/activate-client"))
}

func TestRequest_UnauthenticatedMakesNoNetworkCall(t *testing.T) {
	creds := &fakeCredentials{}
	gw, _, counter, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	_, err := gw.ListClients(ctx)
	assert.ErrorIs(t, err, driven.ErrUnauthenticated)

	err = gw.ValidateRemittance(ctx, 1)
	assert.ErrorIs(t, err, driven.ErrUnauthenticated)

	_, err = gw.CheckAuth(ctx)
	assert.ErrorIs(t, err, driven.ErrUnauthenticated)

	assert.Equal(t, int64(0), counter.total.Load())
}

func TestRequest_SendsCredentialHeaderThatCallerCannotOverride(t *testing.T) {
	creds := &fakeCredentials{value: "real-key"}
	var gotAuth, gotLang []string
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("x-viuelpadel-authorization")
		gotLang = r.Header.Values("Accept-Language")
		w.Write([]byte(`{"invoices":[]}`))
	},
		backend.WithHeader("x-viuelpadel-authorization", "forged"),
		backend.WithHeader("Accept-Language", "ca"),
	)

	_, err := gw.ListInvoices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"real-key"}, gotAuth)
	assert.Equal(t, []string{"ca"}, gotLang)
}

func TestRequest_CustomAuthHeader(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	var got string
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("x-other-authorization")
		w.Write([]byte(`true`))
	}, backend.WithAuthHeader("x-other-authorization"))

	ok, err := gw.CheckAuth(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "k", got)
}

func TestRequest_ForbiddenRevokesCredential(t *testing.T) {
	creds := &fakeCredentials{value: "stale"}
	gw, store, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := gw.ListInvoices(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, driven.ErrAuthRevoked)
	var failed *driven.RequestFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, http.StatusForbidden, failed.Status)
	assert.Equal(t, 1, creds.revocations())
	assert.False(t, store.Has("/viuelpadel/invoices"), "failed reads must not be cached")

	_, err = gw.ListInvoices(context.Background())
	assert.ErrorIs(t, err, driven.ErrUnauthenticated)
}

func TestRequest_ForbiddenOnWriteAlsoRevokes(t *testing.T) {
	creds := &fakeCredentials{value: "stale"}
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := gw.UpdateRemittanceLine(context.Background(), 3, 1500)

	assert.ErrorIs(t, err, driven.ErrAuthRevoked)
	assert.Equal(t, 1, creds.revocations())
}

func TestRequest_OtherStatusIsRequestFailed(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := gw.ListRemittanceTypes(context.Background())

	var failed *driven.RequestFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, http.StatusInternalServerError, failed.Status)
	assert.Equal(t, "/viuelpadel/remittance-types", failed.Endpoint)
	assert.NotErrorIs(t, err, driven.ErrAuthRevoked)
	assert.Equal(t, 0, creds.revocations())
}

func TestRequest_TransportFailureIsNetworkError(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	gw, _, _, server := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := gw.ListClients(context.Background())

	var netErr *driven.NetworkError
	require.True(t, errors.As(err, &netErr))
	var failed *driven.RequestFailedError
	assert.False(t, errors.As(err, &failed))
	assert.Equal(t, 0, creds.revocations())
}

func TestCheckAuth_IsNeverCached(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	gw, _, counter, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`false`))
	})

	for range 2 {
		ok, err := gw.CheckAuth(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Equal(t, 2, counter.count("/viuelpadel/check-auth"))
}

func TestListInvoices_DecodesAmounts(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"invoices":[{"Número de Factura":"F-001","Tipus":"Quota","Client":"Ana","Descripció":"Març","Import":42.5,"Data":"01-03-2024","Link":"https://docs.example/f1"}]}`))
	})

	invoices, err := gw.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.Equal(t, "F-001", inv.Number)
	assert.Equal(t, "Quota", inv.Type)
	assert.Equal(t, "Març", inv.Description)
	assert.True(t, decimal.RequireFromString("42.5").Equal(inv.Amount))
	assert.Equal(t, "01-03-2024", inv.Date)
}

func TestListRemittances_SendsTypeParameter(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	var gotType string
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.URL.Query().Get("remittanceTypeId")
		w.Write([]byte(`{"remittances":[{"id":9,"status":"pending","month":3,"year":2024}]}`))
	})

	remittances, err := gw.ListRemittances(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, "4", gotType)
	require.Len(t, remittances, 1)
	assert.Equal(t, model.RemittanceStatusPending, remittances[0].Status)
	assert.False(t, remittances[0].IsValidated())
}

func TestEditClient_PostsOriginalNameAndPayload(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	var body map[string]any
	var method, contentType string
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		w.Write([]byte(`{}`))
	})

	err := gw.EditClient(context.Background(), "Ana", model.NewClientPayload{Client: "Ana Puig", IBAN: "ES12"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Ana", body["originalClient"])
	assert.Equal(t, "Ana Puig", body["Client"])
	assert.Equal(t, "ES12", body["IBAN"])
}

func TestAddRemittanceLine_ReturnsCreatedID(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	var body map[string]any
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		w.Write([]byte(`{"id":42}`))
	})

	id, err := gw.AddRemittanceLine(context.Background(), 7, 3, 2500)
	require.NoError(t, err)

	assert.Equal(t, int64(42), id)
	assert.EqualValues(t, 7, body["remittanceId"])
	assert.EqualValues(t, 3, body["clientId"])
	assert.EqualValues(t, 2500, body["amountMinUnit"])
}

func TestAddRemittanceTypeClient_OpaqueAcknowledgement(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	gw, _, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	id, err := gw.AddRemittanceTypeClient(context.Background(), 1, 2, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
}

func TestGet_MalformedBodyIsDecodeError(t *testing.T) {
	creds := &fakeCredentials{value: "k"}
	gw, store, _, _ := newTestGateway(t, creds, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := gw.ListRemittanceLines(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, store.Has("/viuelpadel/remittance-lines?remittanceId=1"))

	var failed *driven.RequestFailedError
	var netErr *driven.NetworkError
	assert.False(t, errors.As(err, &failed))
	assert.False(t, errors.As(err, &netErr))
}
