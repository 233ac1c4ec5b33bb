package postgres

import (
	"context"
	"fmt"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

// ContractStore implements storage.ContractStore using PostgreSQL.
// The record is a single row pinned to id 1.
type ContractStore struct {
	pool *Pool
}

// NewContractStore creates a new ContractStore.
func NewContractStore(pool *Pool) *ContractStore {
	return &ContractStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ContractStore = (*ContractStore)(nil)

// Get retrieves the record. Returns ErrNotFound if it was never saved.
func (s *ContractStore) Get(ctx context.Context) (*domain.ContractInfo, error) {
	query := `
		SELECT nft_address, trophy_count
		FROM contract_info
		WHERE id = 1
	`

	var info domain.ContractInfo
	var count int64
	err := s.pool.QueryRow(ctx, query).Scan(&info.NFTAddress, &count)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get contract info: %w", err)
	}
	info.TrophyCount = uint64(count)
	return &info, nil
}

// Save inserts or replaces the record.
func (s *ContractStore) Save(ctx context.Context, info *domain.ContractInfo) error {
	if info == nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO contract_info (id, nft_address, trophy_count)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET nft_address = EXCLUDED.nft_address,
		    trophy_count = EXCLUDED.trophy_count
	`

	_, err := s.pool.Exec(ctx, query, info.NFTAddress, int64(info.TrophyCount))
	if err != nil {
		return fmt.Errorf("save contract info: %w", err)
	}
	return nil
}
