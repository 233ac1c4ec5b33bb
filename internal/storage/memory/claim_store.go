package memory

import (
	"context"
	"sync"

	"trophy-hub/internal/storage"
)

type claimKey struct {
	trophyID uint64
	claimant string
}

// ClaimStore is an in-memory implementation of storage.ClaimStore.
type ClaimStore struct {
	mu   sync.RWMutex
	data map[claimKey]struct{}
}

// NewClaimStore creates a new in-memory claim store.
func NewClaimStore() *ClaimStore {
	return &ClaimStore{
		data: make(map[claimKey]struct{}),
	}
}

// Insert records a claim. Returns ErrDuplicateKey if it already exists.
func (s *ClaimStore) Insert(_ context.Context, trophyID uint64, claimant string) error {
	if trophyID == 0 || claimant == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := claimKey{trophyID: trophyID, claimant: claimant}
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[key] = struct{}{}
	return nil
}

// Exists reports whether a claim is recorded for (trophyID, claimant).
func (s *ClaimStore) Exists(_ context.Context, trophyID uint64, claimant string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.data[claimKey{trophyID: trophyID, claimant: claimant}]
	return exists, nil
}
