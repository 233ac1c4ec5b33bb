// Package signing implements the claim signature scheme: deterministic
// ECDSA over the secp256k1 curve, messages digested with a single round of
// SHA-256, signatures in compact (r||s) form, keys and signatures crossing
// the boundary as base64 text.
package signing

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// CompactSigLen is the byte length of a compact (r||s) signature.
const CompactSigLen = 64

// Verify reports whether sigB64 is a valid compact secp256k1 ECDSA
// signature over SHA-256(message) by the key pubKeyB64. Any malformed
// encoding (bad base64, wrong length, invalid curve point, scalar
// overflow) verifies as false; there is no distinct error surface.
func Verify(pubKeyB64, message, sigB64 string) bool {
	pubBytes, err := base64.StdEncoding.DecodeString(pubKeyB64)
	if err != nil {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubBytes)
	if err != nil {
		return false
	}

	sigBytes, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil || len(sigBytes) != CompactSigLen {
		return false
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sigBytes[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sigBytes[32:]); overflow {
		return false
	}

	digest := sha256.Sum256([]byte(message))
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], pub)
}

// Sign produces the base64 compact signature of SHA-256(message) with the
// given private key. Counterpart of Verify, used by the signer tool and by
// tests; the contract side only ever verifies.
func Sign(priv *secp256k1.PrivateKey, message string) string {
	digest := sha256.Sum256([]byte(message))
	// SignCompact prepends a recovery byte; the wire format is plain r||s.
	compact := ecdsa.SignCompact(priv, digest[:], true)
	return base64.StdEncoding.EncodeToString(compact[1:])
}

// EncodePubKey encodes a public key in the base64 compressed form expected
// by BySignature rules.
func EncodePubKey(pub *secp256k1.PublicKey) string {
	return base64.StdEncoding.EncodeToString(pub.SerializeCompressed())
}
