// Package commitment implements the hashing primitive shared by the
// membership protocol: 32-byte Keccak256 digests binding secret material
// (identity plus salt, or presented parameters) without revealing it.
package commitment

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// DigestSize is the size of every commitment digest in bytes.
	DigestSize = 32

	// SaltSize is the required salt length for identity commitments.
	SaltSize = 16

	// ParamsSize is the required length of presented proof parameters.
	ParamsSize = 64
)

// Digest is a 32-byte commitment value.
type Digest [DigestSize]byte

// Identity computes the credential commitment Keccak256(identity || salt).
// The salt is consumed here and never stored; only the digest survives.
func Identity(identity string, salt []byte) Digest {
	var d Digest
	copy(d[:], crypto.Keccak256([]byte(identity), salt))
	return d
}

// Params computes the parameter commitment Keccak256(params).
func Params(params []byte) Digest {
	return Sum(params)
}

// Sum computes the Keccak256 digest of arbitrary data.
func Sum(data []byte) Digest {
	var d Digest
	copy(d[:], crypto.Keccak256(data))
	return d
}

// FromBytes converts a raw 32-byte slice into a Digest.
func FromBytes(b []byte) (Digest, error) {
	if len(b) != DigestSize {
		return Digest{}, fmt.Errorf("commitment: digest must be %d bytes, got %d", DigestSize, len(b))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// Bytes returns the digest as a fresh byte slice.
func (d Digest) Bytes() []byte {
	out := make([]byte, DigestSize)
	copy(out, d[:])
	return out
}

// Hex returns the digest as a 0x-prefixed hex string.
func (d Digest) Hex() string {
	return "0x" + hex.EncodeToString(d[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return d.Hex()
}
