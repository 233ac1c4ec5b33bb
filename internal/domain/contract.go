package domain

// ContractInfo is the singleton contract-wide record.
// NFTAddress stays empty until the collaborator bootstrap reply is handled
// and is immutable afterwards. TrophyCount is the source of new trophy ids.
type ContractInfo struct {
	NFTAddress  string `json:"nft_address"`
	TrophyCount uint64 `json:"trophy_count"`
}
