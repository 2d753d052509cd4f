package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/backend"
	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/cache"
	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/memory"
	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/domain/model"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(prober driven.AuthProber) (*application.AuthService, *memory.CredentialStore) {
	store := memory.NewCredentialStore()
	slot := application.NewCredentialSlot(store)
	return application.NewAuthService(slot, prober, discardLogger()), store
}

func TestAuthService_LoginTrimsAndStores(t *testing.T) {
	svc, store := newAuthService(&mockProber{})
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "  secret-key \n"))

	stored, err := store.Get(ctx, model.AdminKeyService)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", stored)

	cred, ok, err := svc.Credential(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret-key", cred)
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	svc, _ := newAuthService(&mockProber{})
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "k"))
	require.NoError(t, svc.Logout(ctx))
	require.NoError(t, svc.Logout(ctx))

	has, err := svc.HasCredential(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAuthService_BlankLoginCountsAsAbsent(t *testing.T) {
	svc, _ := newAuthService(&mockProber{})
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "   "))

	has, err := svc.HasCredential(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAuthService_IsAuthenticatedWithoutCredentialSkipsProbe(t *testing.T) {
	prober := &mockProber{result: true}
	svc, _ := newAuthService(prober)

	ok, err := svc.IsAuthenticated(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), prober.calls.Load())
}

func TestAuthService_IsAuthenticatedReturnsProbeVerdict(t *testing.T) {
	for _, verdict := range []bool{true, false} {
		prober := &mockProber{result: verdict}
		svc, _ := newAuthService(prober)
		require.NoError(t, svc.Login(context.Background(), "k"))

		ok, err := svc.IsAuthenticated(context.Background())

		require.NoError(t, err)
		assert.Equal(t, verdict, ok)
		assert.Equal(t, int64(1), prober.calls.Load())
	}
}

func TestAuthService_IsAuthenticatedPropagatesProbeFailure(t *testing.T) {
	probeErr := &driven.NetworkError{Method: http.MethodGet, Endpoint: "/viuelpadel/check-auth", Err: errors.New("dial tcp: refused")}
	svc, _ := newAuthService(&mockProber{err: probeErr})
	require.NoError(t, svc.Login(context.Background(), "k"))

	ok, err := svc.IsAuthenticated(context.Background())

	assert.False(t, ok)
	var netErr *driven.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestAuthService_RejectedCredentialIsRemovedByGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	store := memory.NewCredentialStore()
	slot := application.NewCredentialSlot(store)
	gw := backend.NewGateway(server.URL, slot, cache.NewStore(),
		backend.WithHTTPClient(server.Client()),
		backend.WithLogger(discardLogger()),
	)
	svc := application.NewAuthService(slot, gw, discardLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "stale-key"))

	_, err := gw.ListClients(ctx)
	require.ErrorIs(t, err, driven.ErrAuthRevoked)

	has, err := svc.HasCredential(ctx)
	require.NoError(t, err)
	assert.False(t, has, "a 403 must remove the stored credential")
}
