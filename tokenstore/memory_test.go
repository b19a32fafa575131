package tokenstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltdriver/boltdriver-go/tokenstore"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	info := testSession(time.Now().Add(time.Hour))

	require.NoError(t, store.Save("refresh-token", info))

	token, loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "refresh-token", token)
	assert.Equal(t, info.DriverID, loaded.DriverID)
	assert.True(t, store.HasValid())

	// The store hands out copies, not its own value.
	loaded.DriverID = 0
	_, again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, info.DriverID, again.DriverID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save("refresh-token", testSession(time.Now().Add(-time.Minute))))

	_, _, err := store.Load()
	assert.ErrorIs(t, err, tokenstore.ErrNoToken)
	assert.False(t, store.HasValid())
}

func TestMemoryStore_ClearIdempotent(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	assert.False(t, store.HasValid())
}
