// Package hub implements the trophy registry and its mint-authorization
// engine. Calls are expected to arrive sequentially (the host serializes
// them); every operation performs all of its checks before its first write,
// so a failing call has zero state effect.
package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/nft"
	"trophy-hub/internal/storage"
)

// HeightFn reports the current chain height.
type HeightFn func() uint64

// Config holds the hub's dependencies.
type Config struct {
	Contract storage.ContractStore
	Trophies storage.TrophyStore
	Claims   storage.ClaimStore
	Legacy   storage.LegacyStore
	Height   HeightFn
	Logger   *log.Logger // optional
}

// Hub owns the trophy records and decides who may mint.
type Hub struct {
	contract storage.ContractStore
	trophies storage.TrophyStore
	claims   storage.ClaimStore
	legacy   storage.LegacyStore
	height   HeightFn
	logger   *log.Logger
}

// New creates a Hub from its dependencies.
func New(cfg Config) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{
		contract: cfg.Contract,
		trophies: cfg.Trophies,
		claims:   cfg.Claims,
		legacy:   cfg.Legacy,
		height:   cfg.Height,
		logger:   logger,
	}
}

// Instantiate seeds the contract-wide record and returns the instruction
// that deploys the NFT collaborator with the deployer as administrative
// owner. The deployed address arrives later through HandleReply.
func (h *Hub) Instantiate(ctx context.Context, deployer string, nftCodeID uint64) (*nft.InstantiateMsg, error) {
	_, err := h.contract.Get(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if err := h.contract.Save(ctx, &domain.ContractInfo{}); err != nil {
			return nil, fmt.Errorf("seed contract info: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load contract info: %w", err)
	}

	return &nft.InstantiateMsg{
		CodeID:  nftCodeID,
		Admin:   deployer,
		Label:   nft.ContractLabel,
		ReplyID: nft.InstantiateReplyID,
	}, nil
}

// HandleReply captures the collaborator address from the one expected
// instantiation reply. The address is set exactly once; an unknown reply
// id, a missing address attribute, or a second reply all fail
// ErrBootstrapFailed.
func (h *Hub) HandleReply(ctx context.Context, reply *nft.Reply) error {
	if reply.ID != nft.InstantiateReplyID {
		return fmt.Errorf("%w: unexpected reply id %d", ErrBootstrapFailed, reply.ID)
	}

	addr, ok := reply.Attribute(nft.EventInstantiate, nft.AttrContractAddress)
	if !ok || addr == "" {
		return fmt.Errorf("%w: reply carries no contract address", ErrBootstrapFailed)
	}

	info, err := h.contract.Get(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// Reply arriving before Instantiate still initializes the record.
		info = &domain.ContractInfo{}
	case err != nil:
		return fmt.Errorf("load contract info: %w", err)
	}

	if info.NFTAddress != "" {
		return fmt.Errorf("%w: nft address already set", ErrBootstrapFailed)
	}

	info.NFTAddress = addr
	if err := h.contract.Save(ctx, info); err != nil {
		return fmt.Errorf("save contract info: %w", err)
	}

	h.logger.Printf("nft collaborator bootstrapped at %s", addr)
	return nil
}

// CreateTrophy allocates the next id and stores a new trophy with zero
// supply. The rule's referenced identity need not be the creator.
func (h *Hub) CreateTrophy(ctx context.Context, creator string, rule domain.MintRule, metadata domain.Metadata, expiry, maxSupply *uint64) (uint64, error) {
	if !rule.Kind.IsValid() {
		return 0, fmt.Errorf("%w: unknown rule kind %q", ErrInvalidRequest, rule.Kind)
	}

	info, err := h.contract.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, fmt.Errorf("%w: contract not instantiated", ErrBootstrapFailed)
		}
		return 0, fmt.Errorf("load contract info: %w", err)
	}

	id := info.TrophyCount + 1
	trophy := &domain.TrophyInfo{
		Creator:       creator,
		Rule:          rule,
		Metadata:      metadata,
		Expiry:        expiry,
		MaxSupply:     maxSupply,
		CurrentSupply: 0,
	}
	if err := h.trophies.Insert(ctx, id, trophy); err != nil {
		return 0, fmt.Errorf("insert trophy %d: %w", id, err)
	}

	info.TrophyCount = id
	if err := h.contract.Save(ctx, info); err != nil {
		return 0, fmt.Errorf("save contract info: %w", err)
	}

	h.logger.Printf("trophy %d created by %s (rule %s)", id, creator, rule.Kind)
	return id, nil
}

// EditTrophy replaces a trophy's metadata, leaving every other field
// untouched. Only the creator may edit.
func (h *Hub) EditTrophy(ctx context.Context, caller string, trophyID uint64, metadata domain.Metadata) error {
	trophy, err := h.loadTrophy(ctx, trophyID)
	if err != nil {
		return err
	}
	if caller != trophy.Creator {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller)
	}

	trophy.Metadata = metadata
	if err := h.trophies.Update(ctx, trophyID, trophy); err != nil {
		return fmt.Errorf("update trophy %d: %w", trophyID, err)
	}
	return nil
}

// ContractInfo returns the contract-wide record.
func (h *Hub) ContractInfo(ctx context.Context) (*domain.ContractInfo, error) {
	info, err := h.contract.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: contract not instantiated", ErrBootstrapFailed)
		}
		return nil, fmt.Errorf("load contract info: %w", err)
	}
	return info, nil
}

// TrophyInfo returns a trophy by id.
func (h *Hub) TrophyInfo(ctx context.Context, trophyID uint64) (*domain.TrophyInfo, error) {
	return h.loadTrophy(ctx, trophyID)
}

func (h *Hub) loadTrophy(ctx context.Context, trophyID uint64) (*domain.TrophyInfo, error) {
	trophy, err := h.trophies.Get(ctx, trophyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTrophyNotFound, trophyID)
		}
		return nil, fmt.Errorf("load trophy %d: %w", trophyID, err)
	}
	return trophy, nil
}

// nftAddress returns the collaborator address, failing if the bootstrap
// reply has not arrived yet.
func (h *Hub) nftAddress(ctx context.Context) (string, error) {
	info, err := h.contract.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%w: contract not instantiated", ErrBootstrapFailed)
		}
		return "", fmt.Errorf("load contract info: %w", err)
	}
	if info.NFTAddress == "" {
		return "", fmt.Errorf("%w: nft contract address not set", ErrBootstrapFailed)
	}
	return info.NFTAddress, nil
}
