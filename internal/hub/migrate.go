package hub

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/storage"
)

// Migrate upgrades every legacy-schema trophy record to the current schema
// and removes the legacy copies. The transform is one-way and idempotent:
// an id that already has a current-schema record is skipped rather than
// rewritten, so rerunning the migration is a no-op. Returns the number of
// records upgraded.
//
// Legacy records had no rule; the creator becomes the minter. Contract-wide
// state is untouched unless absent, in which case the trophy count is
// derived from the migrated ids.
func (h *Hub) Migrate(ctx context.Context) (int, error) {
	legacy, err := h.legacy.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("list legacy trophies: %w", err)
	}

	ids := make([]uint64, 0, len(legacy))
	for id := range legacy {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	migrated := 0
	var highest uint64
	for _, id := range ids {
		if id > highest {
			highest = id
		}

		_, err := h.trophies.Get(ctx, id)
		switch {
		case err == nil:
			// Already upgraded; drop the superseded legacy copy.
			if err := h.legacy.Delete(ctx, id); err != nil {
				return migrated, fmt.Errorf("delete legacy trophy %d: %w", id, err)
			}
			continue
		case !errors.Is(err, storage.ErrNotFound):
			return migrated, fmt.Errorf("load trophy %d: %w", id, err)
		}

		if err := h.trophies.Insert(ctx, id, legacy[id].Upgrade()); err != nil {
			return migrated, fmt.Errorf("insert trophy %d: %w", id, err)
		}
		if err := h.legacy.Delete(ctx, id); err != nil {
			return migrated, fmt.Errorf("delete legacy trophy %d: %w", id, err)
		}
		migrated++
	}

	if len(ids) > 0 {
		if err := h.deriveContractInfo(ctx, highest); err != nil {
			return migrated, err
		}
	}

	if migrated > 0 {
		h.logger.Printf("migrated %d legacy trophy record(s)", migrated)
	}
	return migrated, nil
}

// deriveContractInfo backfills the contract-wide record from migrated ids
// when it is missing. An existing record is left untouched.
func (h *Hub) deriveContractInfo(ctx context.Context, highest uint64) error {
	_, err := h.contract.Get(ctx)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("load contract info: %w", err)
	}

	info := &domain.ContractInfo{TrophyCount: highest}
	if err := h.contract.Save(ctx, info); err != nil {
		return fmt.Errorf("save contract info: %w", err)
	}
	return nil
}
