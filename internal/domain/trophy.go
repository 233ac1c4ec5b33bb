package domain

// RuleKind discriminates the mint rule variants.
type RuleKind string

const (
	// RuleByMinter allows a single pre-authorized address to mint instances.
	RuleByMinter RuleKind = "by_minter"
	// RuleBySignature allows anyone holding a valid signature of their own
	// address, produced by the trophy's key, to mint exactly one instance.
	RuleBySignature RuleKind = "by_signature"
)

// IsValid checks if the rule kind is a known value.
func (k RuleKind) IsValid() bool {
	return k == RuleByMinter || k == RuleBySignature
}

// MintRule is the closed union of minting rules. Exactly one of Minter or
// PubKey is meaningful, selected by Kind. The rule is fixed at trophy
// creation and never changes.
type MintRule struct {
	Kind RuleKind `json:"kind"`
	// Minter is the authorized minter address when Kind is RuleByMinter.
	Minter string `json:"minter,omitempty"`
	// PubKey is the base64 compressed secp256k1 public key when Kind is
	// RuleBySignature.
	PubKey string `json:"pubkey,omitempty"`
}

// ByMinter builds a rule that authorizes only the given address to mint.
func ByMinter(minter string) MintRule {
	return MintRule{Kind: RuleByMinter, Minter: minter}
}

// BySignature builds a rule that authorizes claims signed by the given key.
func BySignature(pubKey string) MintRule {
	return MintRule{Kind: RuleBySignature, PubKey: pubKey}
}

// TrophyInfo represents one trophy record.
// Corresponds to trophies table in PostgreSQL, keyed by a dense 1-based id.
type TrophyInfo struct {
	Creator       string   // address that created the trophy, immutable
	Rule          MintRule // minting rule, immutable
	Metadata      Metadata // descriptive record, editable by Creator only
	Expiry        *uint64  // chain height past which minting closes (nullable)
	MaxSupply     *uint64  // cap on instances (nullable = uncapped)
	CurrentSupply uint64   // instances minted so far
}

// Expired reports whether minting is closed at the given chain height.
// A trophy with no expiry never expires; one with an expiry is closed at
// that height and beyond.
func (t *TrophyInfo) Expired(height uint64) bool {
	return t.Expiry != nil && height >= *t.Expiry
}

// SupplyAvailable reports whether n more instances fit under the cap.
func (t *TrophyInfo) SupplyAvailable(n uint64) bool {
	return t.MaxSupply == nil || t.CurrentSupply+n <= *t.MaxSupply
}
