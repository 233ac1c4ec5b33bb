package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

// LegacyStore implements storage.LegacyStore using PostgreSQL.
type LegacyStore struct {
	pool *Pool
}

// NewLegacyStore creates a new LegacyStore.
func NewLegacyStore(pool *Pool) *LegacyStore {
	return &LegacyStore{pool: pool}
}

// Compile-time interface check.
var _ storage.LegacyStore = (*LegacyStore)(nil)

// Put inserts or replaces a legacy record.
func (s *LegacyStore) Put(ctx context.Context, id uint64, t *domain.LegacyTrophyInfo) error {
	if t == nil || id == 0 {
		return storage.ErrInvalidInput
	}

	metadata, err := json.Marshal(t.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO legacy_trophies (trophy_id, creator, metadata, instance_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (trophy_id) DO UPDATE
		SET creator = EXCLUDED.creator,
		    metadata = EXCLUDED.metadata,
		    instance_count = EXCLUDED.instance_count
	`

	_, err = s.pool.Exec(ctx, query, int64(id), t.Creator, metadata, int64(t.InstanceCount))
	if err != nil {
		return fmt.Errorf("put legacy trophy: %w", err)
	}
	return nil
}

// All retrieves every legacy record keyed by trophy id.
func (s *LegacyStore) All(ctx context.Context) (map[uint64]*domain.LegacyTrophyInfo, error) {
	query := `
		SELECT trophy_id, creator, metadata, instance_count
		FROM legacy_trophies
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list legacy trophies: %w", err)
	}
	defer rows.Close()

	result := make(map[uint64]*domain.LegacyTrophyInfo)
	for rows.Next() {
		var (
			id       int64
			t        domain.LegacyTrophyInfo
			metadata []byte
			count    int64
		)
		if err := rows.Scan(&id, &t.Creator, &metadata, &count); err != nil {
			return nil, fmt.Errorf("scan legacy trophy: %w", err)
		}
		if err := json.Unmarshal(metadata, &t.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		t.InstanceCount = uint64(count)
		result[uint64(id)] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy trophies: %w", err)
	}
	return result, nil
}

// Delete removes a legacy record. Deleting an absent id is a no-op.
func (s *LegacyStore) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM legacy_trophies WHERE trophy_id = $1`

	if _, err := s.pool.Exec(ctx, query, int64(id)); err != nil {
		return fmt.Errorf("delete legacy trophy: %w", err)
	}
	return nil
}
