package memory

import (
	"context"
	"sync"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

// TrophyStore is an in-memory implementation of storage.TrophyStore.
type TrophyStore struct {
	mu   sync.RWMutex
	data map[uint64]*domain.TrophyInfo // keyed by trophy id
}

// NewTrophyStore creates a new in-memory trophy store.
func NewTrophyStore() *TrophyStore {
	return &TrophyStore{
		data: make(map[uint64]*domain.TrophyInfo),
	}
}

// Insert adds a new trophy. Returns ErrDuplicateKey if the id exists.
func (s *TrophyStore) Insert(_ context.Context, id uint64, t *domain.TrophyInfo) error {
	if t == nil || id == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	trophyCopy := *t
	s.data[id] = &trophyCopy
	return nil
}

// Get retrieves a trophy by id. Returns ErrNotFound if not exists.
func (s *TrophyStore) Get(_ context.Context, id uint64) (*domain.TrophyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	trophyCopy := *t
	return &trophyCopy, nil
}

// Update replaces an existing trophy. Returns ErrNotFound if not exists.
func (s *TrophyStore) Update(_ context.Context, id uint64, t *domain.TrophyInfo) error {
	if t == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return storage.ErrNotFound
	}

	trophyCopy := *t
	s.data[id] = &trophyCopy
	return nil
}
