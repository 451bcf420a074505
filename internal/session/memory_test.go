package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, Session{UserID: 7, Username: "nina", LoggedIn: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 7, sess.UserID)
	assert.Equal(t, "nina", sess.Username)
	assert.True(t, sess.LoggedIn)

	require.NoError(t, store.Destroy(ctx, token))

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "no-such-token")
	assert.ErrorIs(t, err, ErrNoSession)

	assert.ErrorIs(t, store.Destroy(ctx, "no-such-token"), ErrNoSession)
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.Create(ctx, Session{UserID: 1, LoggedIn: true})
	require.NoError(t, err)
	second, err := store.Create(ctx, Session{UserID: 1, LoggedIn: true})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
