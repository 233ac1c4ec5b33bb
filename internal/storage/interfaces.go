package storage

import (
	"context"

	"trophy-hub/internal/domain"
)

// ContractStore holds the singleton contract-wide record.
type ContractStore interface {
	// Get retrieves the record. Returns ErrNotFound if it was never saved.
	Get(ctx context.Context) (*domain.ContractInfo, error)

	// Save inserts or replaces the record.
	Save(ctx context.Context, info *domain.ContractInfo) error
}

// TrophyStore provides access to trophy records, keyed by id.
type TrophyStore interface {
	// Insert adds a new trophy. Returns ErrDuplicateKey if the id exists.
	Insert(ctx context.Context, id uint64, t *domain.TrophyInfo) error

	// Get retrieves a trophy by id. Returns ErrNotFound if not exists.
	Get(ctx context.Context, id uint64) (*domain.TrophyInfo, error)

	// Update replaces an existing trophy. Returns ErrNotFound if not exists.
	Update(ctx context.Context, id uint64, t *domain.TrophyInfo) error
}

// ClaimStore records successful signature claims. Presence of a record
// proves the claimant already minted; records are never updated or deleted.
type ClaimStore interface {
	// Insert records a claim. Returns ErrDuplicateKey if (trophyID,
	// claimant) already exists.
	Insert(ctx context.Context, trophyID uint64, claimant string) error

	// Exists reports whether a claim is recorded for (trophyID, claimant).
	Exists(ctx context.Context, trophyID uint64, claimant string) (bool, error)
}

// LegacyStore holds pre-migration trophy records. Written only by storage
// created before the current schema (and by tests); the migration reads
// and deletes them.
type LegacyStore interface {
	// Put inserts or replaces a legacy record.
	Put(ctx context.Context, id uint64, t *domain.LegacyTrophyInfo) error

	// All retrieves every legacy record keyed by trophy id.
	All(ctx context.Context) (map[uint64]*domain.LegacyTrophyInfo, error)

	// Delete removes a legacy record. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id uint64) error
}
