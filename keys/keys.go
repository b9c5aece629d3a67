// Package keys provides helpers for the secp256k1 key material carried by
// registered organizations. The protocol itself only checks that a public
// key is 33 bytes; hosts that want to guarantee the key is a real curve
// point can use ParsePublicKey before registering.
package keys

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// CompressedPublicKeySize is the length of a compressed secp256k1 public key.
const CompressedPublicKeySize = 33

// Generate creates a new secp256k1 private key for an organization.
func Generate() (*secp256k1.PrivateKey, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("keys: failed to generate private key: %w", err)
	}
	return priv, nil
}

// CompressedPublicKey returns the 33-byte compressed encoding of the
// public key belonging to priv.
func CompressedPublicKey(priv *secp256k1.PrivateKey) []byte {
	return priv.PubKey().SerializeCompressed()
}

// ParsePublicKey parses and validates a compressed 33-byte public key,
// rejecting encodings that are not a point on the curve.
func ParsePublicKey(pubKeyBytes []byte) (*btcec.PublicKey, error) {
	if len(pubKeyBytes) != CompressedPublicKeySize {
		return nil, fmt.Errorf("keys: public key must be %d bytes, got %d", CompressedPublicKeySize, len(pubKeyBytes))
	}

	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("keys: invalid public key bytes: %w", err)
	}

	return pubKey, nil
}
