package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trophy-hub/internal/storage"
)

func TestClaimStore_InsertAndExists(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewClaimStore(pool)
	ctx := context.Background()

	exists, err := store.Exists(ctx, 1, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	err = store.Insert(ctx, 1, "alice")
	require.NoError(t, err)

	exists, err = store.Exists(ctx, 1, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClaimStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewClaimStore(pool)
	ctx := context.Background()

	err := store.Insert(ctx, 1, "alice")
	require.NoError(t, err)

	err = store.Insert(ctx, 1, "alice")
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestClaimStore_CompositeKey(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewClaimStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, 1, "alice"))
	require.NoError(t, store.Insert(ctx, 2, "alice"))
	require.NoError(t, store.Insert(ctx, 1, "bob"))

	exists, err := store.Exists(ctx, 2, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}
