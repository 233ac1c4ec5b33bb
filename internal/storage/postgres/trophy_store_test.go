package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

func sampleTrophy() *domain.TrophyInfo {
	return &domain.TrophyInfo{
		Creator: "creator",
		Rule:    domain.ByMinter("minter"),
		Metadata: domain.Metadata{
			Name:        ptr("Test Trophy"),
			Description: ptr("This is a test"),
			Image:       ptr("ipfs://image"),
			Attributes: []domain.Trait{
				{TraitType: "tier", Value: "gold"},
			},
		},
		Expiry:        ptr(uint64(20000)),
		MaxSupply:     ptr(uint64(100)),
		CurrentSupply: 0,
	}
}

func TestTrophyStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTrophyStore(pool)
	ctx := context.Background()

	trophy := sampleTrophy()
	err := store.Insert(ctx, 1, trophy)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, trophy.Creator, retrieved.Creator)
	assert.Equal(t, trophy.Rule, retrieved.Rule)
	assert.Equal(t, trophy.Metadata, retrieved.Metadata)
	assert.Equal(t, *trophy.Expiry, *retrieved.Expiry)
	assert.Equal(t, *trophy.MaxSupply, *retrieved.MaxSupply)
	assert.Equal(t, trophy.CurrentSupply, retrieved.CurrentSupply)
}

func TestTrophyStore_NullableFields(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTrophyStore(pool)
	ctx := context.Background()

	trophy := &domain.TrophyInfo{
		Creator: "creator",
		Rule:    domain.BySignature("cHVia2V5"),
	}
	err := store.Insert(ctx, 1, trophy)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, 1)
	require.NoError(t, err)

	assert.Nil(t, retrieved.Expiry)
	assert.Nil(t, retrieved.MaxSupply)
	assert.Equal(t, domain.RuleBySignature, retrieved.Rule.Kind)
	assert.Equal(t, "cHVia2V5", retrieved.Rule.PubKey)
	assert.Empty(t, retrieved.Rule.Minter)
}

func TestTrophyStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTrophyStore(pool)
	ctx := context.Background()

	err := store.Insert(ctx, 1, sampleTrophy())
	require.NoError(t, err)

	err = store.Insert(ctx, 1, sampleTrophy())
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestTrophyStore_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTrophyStore(pool)

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTrophyStore_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTrophyStore(pool)
	ctx := context.Background()

	trophy := sampleTrophy()
	err := store.Insert(ctx, 1, trophy)
	require.NoError(t, err)

	trophy.CurrentSupply = 5
	trophy.Metadata.Name = ptr("Updated Trophy Name")
	err = store.Update(ctx, 1, trophy)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), retrieved.CurrentSupply)
	assert.Equal(t, "Updated Trophy Name", *retrieved.Metadata.Name)
}

func TestTrophyStore_UpdateNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTrophyStore(pool)

	err := store.Update(context.Background(), 42, sampleTrophy())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
