package hub

import (
	"context"
	"fmt"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/nft"
	"trophy-hub/internal/signing"
)

// MintByMinter mints one instance per owner, in order, under a ByMinter
// rule. Serials are gapless and strictly increasing across calls: a second
// call after minting 2 instances starts at serial 3.
//
// Checks run in fixed order: existence, rule, expiry, supply. The first
// failure is the reported error and nothing is written.
func (h *Hub) MintByMinter(ctx context.Context, caller string, trophyID uint64, owners []string) (*nft.Instruction, error) {
	if len(owners) == 0 {
		return nil, fmt.Errorf("%w: owners list is empty", ErrInvalidRequest)
	}

	trophy, err := h.loadTrophy(ctx, trophyID)
	if err != nil {
		return nil, err
	}
	if trophy.Rule.Kind != domain.RuleByMinter {
		return nil, fmt.Errorf("%w: minting rule is not %s", ErrRuleMismatch, domain.RuleByMinter)
	}
	if caller != trophy.Rule.Minter {
		return nil, fmt.Errorf("%w: caller is not minter", ErrRuleMismatch)
	}
	if trophy.Expired(h.height()) {
		return nil, fmt.Errorf("%w: trophy %d", ErrExpired, trophyID)
	}
	n := uint64(len(owners))
	if !trophy.SupplyAvailable(n) {
		return nil, fmt.Errorf("%w: trophy %d", ErrSupplyExceeded, trophyID)
	}

	contract, err := h.nftAddress(ctx)
	if err != nil {
		return nil, err
	}

	startSerial := trophy.CurrentSupply + 1
	trophy.CurrentSupply += n
	if err := h.trophies.Update(ctx, trophyID, trophy); err != nil {
		return nil, fmt.Errorf("update trophy %d: %w", trophyID, err)
	}

	h.logger.Printf("trophy %d: minted %d instance(s) by minter, serials %d-%d",
		trophyID, n, startSerial, trophy.CurrentSupply)

	return &nft.Instruction{
		Contract: contract,
		Mint: nft.MintMsg{
			TrophyID:    trophyID,
			StartSerial: startSerial,
			Owners:      owners,
		},
	}, nil
}

// MintBySignature mints a single instance for the caller under a
// BySignature rule. The signed message is always the caller's own identity
// string, so a signature binds to the claimant and cannot be spent by
// anyone else. At most one successful claim per (trophy, claimant) ever
// exists.
//
// Checks run in fixed order: existence, rule, expiry, supply, prior claim,
// signature. The first failure is the reported error and nothing is
// written.
func (h *Hub) MintBySignature(ctx context.Context, caller string, trophyID uint64, signature string) (*nft.Instruction, error) {
	trophy, err := h.loadTrophy(ctx, trophyID)
	if err != nil {
		return nil, err
	}
	if trophy.Rule.Kind != domain.RuleBySignature {
		return nil, fmt.Errorf("%w: minting rule is not %s", ErrRuleMismatch, domain.RuleBySignature)
	}
	if trophy.Expired(h.height()) {
		return nil, fmt.Errorf("%w: trophy %d", ErrExpired, trophyID)
	}
	if !trophy.SupplyAvailable(1) {
		return nil, fmt.Errorf("%w: trophy %d", ErrSupplyExceeded, trophyID)
	}

	claimed, err := h.claims.Exists(ctx, trophyID, caller)
	if err != nil {
		return nil, fmt.Errorf("check claim: %w", err)
	}
	if claimed {
		return nil, fmt.Errorf("%w: trophy %d by %s", ErrAlreadyMinted, trophyID, caller)
	}

	if !signing.Verify(trophy.Rule.PubKey, caller, signature) {
		return nil, ErrSignatureInvalid
	}

	contract, err := h.nftAddress(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.claims.Insert(ctx, trophyID, caller); err != nil {
		return nil, fmt.Errorf("record claim: %w", err)
	}
	trophy.CurrentSupply++
	if err := h.trophies.Update(ctx, trophyID, trophy); err != nil {
		return nil, fmt.Errorf("update trophy %d: %w", trophyID, err)
	}

	h.logger.Printf("trophy %d: claimed by %s, serial %d", trophyID, caller, trophy.CurrentSupply)

	return &nft.Instruction{
		Contract: contract,
		Mint: nft.MintMsg{
			TrophyID:    trophyID,
			StartSerial: trophy.CurrentSupply,
			Owners:      []string{caller},
		},
	}, nil
}
