package domain

// LegacyTrophyInfo is the pre-migration trophy schema. It had no mint rule,
// expiry or supply cap; InstanceCount maps to CurrentSupply. Records of
// this shape are read and removed by the one-shot migration.
type LegacyTrophyInfo struct {
	Creator       string
	Metadata      Metadata
	InstanceCount uint64
}

// Upgrade converts a legacy record to the current schema. The legacy schema
// had no rule concept; the creator is assumed to also be the minter.
func (l *LegacyTrophyInfo) Upgrade() *TrophyInfo {
	return &TrophyInfo{
		Creator:       l.Creator,
		Rule:          ByMinter(l.Creator),
		Metadata:      l.Metadata,
		Expiry:        nil,
		MaxSupply:     nil,
		CurrentSupply: l.InstanceCount,
	}
}
