// Package protocol implements the membership commitment protocol: an
// identity holder commits a salted hash of its private identifier against
// an approved organization, later issues proofs referencing that
// commitment, and verifiers check freshly supplied secret material against
// the recorded digests without learning the identifier.
//
// Every operation is a pure function of (state, Env, arguments): either all
// validations pass and exactly one transition is applied, or the state is
// left untouched and a sentinel error from errors.go is returned. The
// package performs no locking; hosts must serialize mutating calls (see
// the service package).
package protocol

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/fitpass/go-membership-proof/commitment"
)

// DefaultMaxProofs is the proof ledger ceiling used when the host does not
// configure one.
const DefaultMaxProofs = 1024

// Config holds protocol configuration.
type Config struct {
	// MaxProofs caps how many proofs may ever be issued. Zero selects
	// DefaultMaxProofs.
	MaxProofs uint64
}

// Env carries the per-call facts supplied by the host: the caller's
// address and the current logical time. Both must stay fixed for the
// duration of one operation.
type Env struct {
	Caller common.Address
	Time   int64
}

// Organization is an approved registrant able to carry member credentials.
type Organization struct {
	ID        uint64
	PublicKey []byte // 33-byte compressed secp256k1 key
	Name      string
	Verified  bool
}

// Credential is the stored commitment for one (identity, organization)
// pair. The salt used to derive Commitment is never retained. Committer
// records who created the credential so revocation can be gated on it.
type Credential struct {
	Commitment commitment.Digest
	Expiry     int64
	Active     bool
	Committer  common.Address
}

// Proof is one immutable entry of the append-only proof ledger.
type Proof struct {
	ID                   uint64
	ParamCommitment      commitment.Digest
	CredentialCommitment commitment.Digest
	Issuer               common.Address
	IssuedAt             int64
}

type credentialKey struct {
	identity string
	orgID    uint64
}

// State is the single global protocol state: the authority slot, the
// organization directory, the credential store and the proof ledger. The
// four stores form one transactional unit; operations never leave a
// partially applied effect.
type State struct {
	maxProofs uint64

	authority  common.Address
	configured bool

	organizations map[uint64]Organization
	credentials   map[credentialKey]Credential
	proofs        []Proof
}

// NewState creates an empty protocol state. Zero config fields fall back
// to defaults.
func NewState(cfg Config) *State {
	maxProofs := cfg.MaxProofs
	if maxProofs == 0 {
		maxProofs = DefaultMaxProofs
	}

	return &State{
		maxProofs:     maxProofs,
		organizations: make(map[uint64]Organization),
		credentials:   make(map[credentialKey]Credential),
	}
}

// MaxProofs returns the configured proof ledger ceiling.
func (s *State) MaxProofs() uint64 {
	return s.maxProofs
}
