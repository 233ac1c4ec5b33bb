package memory

import (
	"context"
	"sync"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

// ContractStore is an in-memory implementation of storage.ContractStore.
type ContractStore struct {
	mu   sync.RWMutex
	info *domain.ContractInfo
}

// NewContractStore creates a new in-memory contract store.
func NewContractStore() *ContractStore {
	return &ContractStore{}
}

// Get retrieves the record. Returns ErrNotFound if it was never saved.
func (s *ContractStore) Get(_ context.Context) (*domain.ContractInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.info == nil {
		return nil, storage.ErrNotFound
	}

	// Return a copy
	infoCopy := *s.info
	return &infoCopy, nil
}

// Save inserts or replaces the record.
func (s *ContractStore) Save(_ context.Context, info *domain.ContractInfo) error {
	if info == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to prevent external mutation
	infoCopy := *info
	s.info = &infoCopy
	return nil
}
