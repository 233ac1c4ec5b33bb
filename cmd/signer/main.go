// Package main is the off-chain half of the BySignature protocol: it
// generates (or loads) a secp256k1 key and signs a claimant address so the
// claimant can mint through the hub.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"trophy-hub/internal/signing"
)

func main() {
	privHex := flag.String("priv", "", "Hex private key (empty to generate a new one)")
	claimant := flag.String("claimant", "", "Claimant address to sign")

	flag.Parse()

	logger := log.New(os.Stderr, "[signer] ", 0)

	if *claimant == "" {
		logger.Fatal("-claimant is required")
	}

	var priv *secp256k1.PrivateKey
	if *privHex == "" {
		var err error
		priv, err = secp256k1.GeneratePrivateKey()
		if err != nil {
			logger.Fatalf("Generate key: %v", err)
		}
		logger.Printf("Generated private key: %s", hex.EncodeToString(priv.Serialize()))
	} else {
		keyBytes, err := hex.DecodeString(*privHex)
		if err != nil || len(keyBytes) != 32 {
			logger.Fatal("-priv must be a 32-byte hex string")
		}
		priv = secp256k1.PrivKeyFromBytes(keyBytes)
	}

	fmt.Printf("pubkey:    %s\n", signing.EncodePubKey(priv.PubKey()))
	fmt.Printf("signature: %s\n", signing.Sign(priv, *claimant))
}
