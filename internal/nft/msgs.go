// Package nft defines the wire boundary with the NFT collaborator contract:
// the instructions the hub emits toward it and the single instantiation
// reply it expects back. The collaborator's internal token model is not
// specified here beyond these shapes.
package nft

const (
	// InstantiateReplyID is the fixed correlation id of the one expected
	// bootstrap reply. Any other reply id is rejected.
	InstantiateReplyID uint64 = 0

	// ContractLabel is the human-readable label attached to the
	// collaborator instantiation instruction.
	ContractLabel = "trophy-nft"

	// EventInstantiate is the reply event type carrying the deployed
	// collaborator's address.
	EventInstantiate = "instantiate_contract"

	// AttrContractAddress is the event attribute key holding the address.
	AttrContractAddress = "contract_address"
)

// MintMsg instructs the collaborator to mint len(Owners) tokens for a
// trophy, with serials StartSerial..StartSerial+len(Owners)-1 assigned to
// Owners in order.
type MintMsg struct {
	TrophyID    uint64   `json:"trophy_id"`
	StartSerial uint64   `json:"start_serial"`
	Owners      []string `json:"owners"`
}

// Instruction is a mint message addressed to a deployed collaborator.
// Dispatch is fire-and-forget: the hub never observes the outcome beyond
// initial delivery.
type Instruction struct {
	Contract string  `json:"contract"`
	Mint     MintMsg `json:"mint"`
}

// InstantiateMsg requests deployment of the collaborator contract with the
// instantiator as administrative owner and an empty init payload.
type InstantiateMsg struct {
	CodeID  uint64 `json:"code_id"`
	Admin   string `json:"admin"`
	Label   string `json:"label"`
	ReplyID uint64 `json:"reply_id"`
}

// Attribute is a key/value pair inside a reply event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a typed group of attributes inside a reply payload.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Reply is the payload delivered on the bootstrap reply channel.
type Reply struct {
	ID     uint64  `json:"id"`
	Events []Event `json:"events"`
}

// Attribute returns the value of the first attribute with the given key in
// the first event of the given type, and whether it was found.
func (r *Reply) Attribute(eventType, key string) (string, bool) {
	for _, ev := range r.Events {
		if ev.Type != eventType {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}
	return "", false
}
