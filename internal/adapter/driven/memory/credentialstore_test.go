package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_RoundTrip(t *testing.T) {
	s := NewCredentialStore()
	ctx := context.Background()

	val, err := s.Get(ctx, "svc")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	require.NoError(t, s.Set(ctx, "svc", "one"))
	require.NoError(t, s.Set(ctx, "svc", "two"))

	val, err = s.Get(ctx, "svc")
	require.NoError(t, err)
	assert.Equal(t, "two", val)

	require.NoError(t, s.Delete(ctx, "svc"))
	require.NoError(t, s.Delete(ctx, "svc"))

	val, err = s.Get(ctx, "svc")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}
