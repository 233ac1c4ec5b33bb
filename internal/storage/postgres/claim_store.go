package postgres

import (
	"context"
	"fmt"

	"trophy-hub/internal/storage"
)

// ClaimStore implements storage.ClaimStore using PostgreSQL.
type ClaimStore struct {
	pool *Pool
}

// NewClaimStore creates a new ClaimStore.
func NewClaimStore(pool *Pool) *ClaimStore {
	return &ClaimStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ClaimStore = (*ClaimStore)(nil)

// Insert records a claim. Returns ErrDuplicateKey if it already exists.
func (s *ClaimStore) Insert(ctx context.Context, trophyID uint64, claimant string) error {
	if trophyID == 0 || claimant == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO claims (trophy_id, claimant)
		VALUES ($1, $2)
	`

	_, err := s.pool.Exec(ctx, query, int64(trophyID), claimant)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// Exists reports whether a claim is recorded for (trophyID, claimant).
func (s *ClaimStore) Exists(ctx context.Context, trophyID uint64, claimant string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM claims WHERE trophy_id = $1 AND claimant = $2
		)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, int64(trophyID), claimant).Scan(&exists); err != nil {
		return false, fmt.Errorf("check claim: %w", err)
	}
	return exists, nil
}
