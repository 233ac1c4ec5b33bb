package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

// TrophyStore implements storage.TrophyStore using PostgreSQL.
// The mint rule is flattened into kind/minter/pubkey columns; metadata is
// stored as JSONB.
type TrophyStore struct {
	pool *Pool
}

// NewTrophyStore creates a new TrophyStore.
func NewTrophyStore(pool *Pool) *TrophyStore {
	return &TrophyStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TrophyStore = (*TrophyStore)(nil)

// Insert adds a new trophy. Returns ErrDuplicateKey if the id exists.
func (s *TrophyStore) Insert(ctx context.Context, id uint64, t *domain.TrophyInfo) error {
	if t == nil || id == 0 {
		return storage.ErrInvalidInput
	}

	metadata, err := json.Marshal(t.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO trophies (
			trophy_id, creator, rule_kind, rule_minter, rule_pubkey,
			metadata, expiry, max_supply, current_supply
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = s.pool.Exec(ctx, query,
		int64(id),
		t.Creator,
		string(t.Rule.Kind),
		t.Rule.Minter,
		t.Rule.PubKey,
		metadata,
		int64Ptr(t.Expiry),
		int64Ptr(t.MaxSupply),
		int64(t.CurrentSupply),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert trophy: %w", err)
	}
	return nil
}

// Get retrieves a trophy by id. Returns ErrNotFound if not exists.
func (s *TrophyStore) Get(ctx context.Context, id uint64) (*domain.TrophyInfo, error) {
	query := `
		SELECT creator, rule_kind, rule_minter, rule_pubkey,
		       metadata, expiry, max_supply, current_supply
		FROM trophies
		WHERE trophy_id = $1
	`

	var (
		t        domain.TrophyInfo
		kind     string
		minter   *string
		pubKey   *string
		metadata []byte
		expiry   *int64
		maxSup   *int64
		current  int64
	)
	err := s.pool.QueryRow(ctx, query, int64(id)).Scan(
		&t.Creator, &kind, &minter, &pubKey, &metadata, &expiry, &maxSup, &current,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get trophy: %w", err)
	}

	t.Rule.Kind = domain.RuleKind(kind)
	if minter != nil {
		t.Rule.Minter = *minter
	}
	if pubKey != nil {
		t.Rule.PubKey = *pubKey
	}
	if err := json.Unmarshal(metadata, &t.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	t.Expiry = uint64Ptr(expiry)
	t.MaxSupply = uint64Ptr(maxSup)
	t.CurrentSupply = uint64(current)
	return &t, nil
}

// Update replaces an existing trophy. Returns ErrNotFound if not exists.
func (s *TrophyStore) Update(ctx context.Context, id uint64, t *domain.TrophyInfo) error {
	if t == nil {
		return storage.ErrInvalidInput
	}

	metadata, err := json.Marshal(t.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		UPDATE trophies
		SET creator = $2, rule_kind = $3, rule_minter = $4, rule_pubkey = $5,
		    metadata = $6, expiry = $7, max_supply = $8, current_supply = $9
		WHERE trophy_id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		int64(id),
		t.Creator,
		string(t.Rule.Kind),
		t.Rule.Minter,
		t.Rule.PubKey,
		metadata,
		int64Ptr(t.Expiry),
		int64Ptr(t.MaxSupply),
		int64(t.CurrentSupply),
	)
	if err != nil {
		return fmt.Errorf("update trophy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
