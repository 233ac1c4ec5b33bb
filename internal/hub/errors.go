package hub

import "errors"

// Hub errors. Each call reports the first failing check in its fixed
// evaluation order; a failing call leaves no state behind. Callers match
// with errors.Is.
var (
	// ErrTrophyNotFound is returned for an unknown trophy id.
	ErrTrophyNotFound = errors.New("trophy not found")

	// ErrUnauthorized is returned when an edit caller is not the creator.
	ErrUnauthorized = errors.New("caller is not creator")

	// ErrRuleMismatch is returned when a mint path does not match the rule
	// stored at creation time, including a by-minter call from the wrong
	// address.
	ErrRuleMismatch = errors.New("mint request does not match trophy rule")

	// ErrExpired is returned when the current chain height is at or past
	// the trophy's expiry.
	ErrExpired = errors.New("minting time has elapsed")

	// ErrSupplyExceeded is returned when a mint would push supply past the
	// cap.
	ErrSupplyExceeded = errors.New("max supply exceeded")

	// ErrAlreadyMinted is returned when a signature claimant already holds
	// an instance of the trophy.
	ErrAlreadyMinted = errors.New("already minted")

	// ErrSignatureInvalid is returned when claim signature verification
	// fails. Malformed and cryptographically wrong signatures are not
	// distinguished.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrBootstrapFailed is returned for a bad or duplicate instantiation
	// reply, and for mints attempted before the collaborator address is
	// known.
	ErrBootstrapFailed = errors.New("nft contract bootstrap failed")

	// ErrInvalidRequest is returned for malformed input, such as an
	// unknown rule kind or an empty owners list.
	ErrInvalidRequest = errors.New("invalid request")
)
