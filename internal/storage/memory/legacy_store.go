package memory

import (
	"context"
	"sync"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

// LegacyStore is an in-memory implementation of storage.LegacyStore.
type LegacyStore struct {
	mu   sync.RWMutex
	data map[uint64]*domain.LegacyTrophyInfo
}

// NewLegacyStore creates a new in-memory legacy store.
func NewLegacyStore() *LegacyStore {
	return &LegacyStore{
		data: make(map[uint64]*domain.LegacyTrophyInfo),
	}
}

// Put inserts or replaces a legacy record.
func (s *LegacyStore) Put(_ context.Context, id uint64, t *domain.LegacyTrophyInfo) error {
	if t == nil || id == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	legacyCopy := *t
	s.data[id] = &legacyCopy
	return nil
}

// All retrieves every legacy record keyed by trophy id.
func (s *LegacyStore) All(_ context.Context) (map[uint64]*domain.LegacyTrophyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[uint64]*domain.LegacyTrophyInfo, len(s.data))
	for id, t := range s.data {
		legacyCopy := *t
		result[id] = &legacyCopy
	}
	return result, nil
}

// Delete removes a legacy record. Deleting an absent id is a no-op.
func (s *LegacyStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	return nil
}
