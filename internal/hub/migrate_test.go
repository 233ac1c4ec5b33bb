package hub

import (
	"context"
	"reflect"
	"testing"

	"trophy-hub/internal/domain"
)

func TestMigrate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A trophy stored in the legacy format.
	legacy := &domain.LegacyTrophyInfo{
		Creator:       "creator",
		Metadata:      mockMetadata(),
		InstanceCount: 4,
	}
	if err := env.legacy.Put(ctx, 1, legacy); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	migrated, err := env.hub.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if migrated != 1 {
		t.Errorf("migrated count mismatch: got %d, want 1", migrated)
	}

	trophy, err := env.hub.TrophyInfo(ctx, 1)
	if err != nil {
		t.Fatalf("TrophyInfo failed: %v", err)
	}
	expected := &domain.TrophyInfo{
		Creator:       "creator",
		Rule:          domain.ByMinter("creator"),
		Metadata:      mockMetadata(),
		Expiry:        nil,
		MaxSupply:     nil,
		CurrentSupply: 4,
	}
	if !reflect.DeepEqual(trophy, expected) {
		t.Errorf("upgraded trophy mismatch: got %+v, want %+v", trophy, expected)
	}

	// The legacy copy is gone.
	remaining, err := env.legacy.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("legacy records remain after migration: %d", len(remaining))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for id, creator := range map[uint64]string{1: "anna", 2: "ben"} {
		legacy := &domain.LegacyTrophyInfo{Creator: creator, Metadata: mockMetadata(), InstanceCount: id}
		if err := env.legacy.Put(ctx, id, legacy); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	migrated, err := env.hub.Migrate(ctx)
	if err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	if migrated != 2 {
		t.Errorf("migrated count mismatch: got %d, want 2", migrated)
	}

	first := make(map[uint64]*domain.TrophyInfo)
	for _, id := range []uint64{1, 2} {
		trophy, err := env.hub.TrophyInfo(ctx, id)
		if err != nil {
			t.Fatalf("TrophyInfo failed: %v", err)
		}
		first[id] = trophy
	}

	// Rerunning yields an identical final state to running once.
	migrated, err = env.hub.Migrate(ctx)
	if err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if migrated != 0 {
		t.Errorf("second run migrated %d records, want 0", migrated)
	}
	for _, id := range []uint64{1, 2} {
		trophy, err := env.hub.TrophyInfo(ctx, id)
		if err != nil {
			t.Fatalf("TrophyInfo failed: %v", err)
		}
		if !reflect.DeepEqual(trophy, first[id]) {
			t.Errorf("trophy %d changed on rerun: got %+v, want %+v", id, trophy, first[id])
		}
	}
}

func TestMigrate_SkipsUpgradedRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A current-schema record already exists at id 1, plus a stale legacy
	// copy of it. Migration must not double-write.
	if _, err := env.hub.CreateTrophy(ctx, "creator", domain.ByMinter("minter"), mockMetadata(), nil, nil); err != nil {
		t.Fatalf("CreateTrophy failed: %v", err)
	}
	if _, err := env.hub.MintByMinter(ctx, "minter", 1, []string{"alice"}); err != nil {
		t.Fatalf("MintByMinter failed: %v", err)
	}
	stale := &domain.LegacyTrophyInfo{Creator: "creator", Metadata: mockMetadata(), InstanceCount: 0}
	if err := env.legacy.Put(ctx, 1, stale); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	migrated, err := env.hub.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if migrated != 0 {
		t.Errorf("migrated count mismatch: got %d, want 0", migrated)
	}

	// The current record kept its state; the stale copy is gone.
	trophy, err := env.hub.TrophyInfo(ctx, 1)
	if err != nil {
		t.Fatalf("TrophyInfo failed: %v", err)
	}
	if trophy.CurrentSupply != 1 {
		t.Errorf("CurrentSupply overwritten: got %d, want 1", trophy.CurrentSupply)
	}
	if trophy.Rule.Kind != domain.RuleByMinter || trophy.Rule.Minter != "minter" {
		t.Errorf("rule overwritten: %+v", trophy.Rule)
	}
	remaining, err := env.legacy.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("stale legacy record remains")
	}
}

func TestMigrate_DerivesContractInfo(t *testing.T) {
	env := newBareEnv()
	ctx := context.Background()

	// Storage predating the current schema: legacy records but no
	// contract-wide record at all.
	for id := uint64(1); id <= 3; id++ {
		legacy := &domain.LegacyTrophyInfo{Creator: "creator", Metadata: mockMetadata(), InstanceCount: 0}
		if err := env.legacy.Put(ctx, id, legacy); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	if _, err := env.hub.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	info, err := env.hub.ContractInfo(ctx)
	if err != nil {
		t.Fatalf("ContractInfo failed: %v", err)
	}
	if info.TrophyCount != 3 {
		t.Errorf("derived TrophyCount mismatch: got %d, want 3", info.TrophyCount)
	}

	// New creations continue from the derived count.
	if err := env.hub.HandleReply(ctx, mockReply()); err != nil {
		t.Fatalf("HandleReply failed: %v", err)
	}
	id, err := env.hub.CreateTrophy(ctx, "creator", domain.ByMinter("minter"), mockMetadata(), nil, nil)
	if err != nil {
		t.Fatalf("CreateTrophy failed: %v", err)
	}
	if id != 4 {
		t.Errorf("next id mismatch: got %d, want 4", id)
	}
}

func TestMigrate_EmptyStorage(t *testing.T) {
	env := newTestEnv(t)

	migrated, err := env.hub.Migrate(context.Background())
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if migrated != 0 {
		t.Errorf("migrated count mismatch: got %d, want 0", migrated)
	}
}

func TestMigrate_PreservesExistingContractInfo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Two current trophies exist; one stray legacy record at id 1.
	for i := 0; i < 2; i++ {
		if _, err := env.hub.CreateTrophy(ctx, "creator", domain.ByMinter("minter"), mockMetadata(), nil, nil); err != nil {
			t.Fatalf("CreateTrophy failed: %v", err)
		}
	}
	stale := &domain.LegacyTrophyInfo{Creator: "creator", Metadata: mockMetadata(), InstanceCount: 0}
	if err := env.legacy.Put(ctx, 1, stale); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, err := env.hub.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	// Contract-wide state is untouched when present.
	info, err := env.hub.ContractInfo(ctx)
	if err != nil {
		t.Fatalf("ContractInfo failed: %v", err)
	}
	if info.TrophyCount != 2 {
		t.Errorf("TrophyCount changed: got %d, want 2", info.TrophyCount)
	}
	if info.NFTAddress != "nft" {
		t.Errorf("NFTAddress changed: %q", info.NFTAddress)
	}

	remaining, err := env.legacy.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("stale legacy record remains")
	}
}
