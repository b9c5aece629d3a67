package protocol

import "github.com/fitpass/go-membership-proof/commitment"

// ParamsSize is the required length of presented proof parameters.
const ParamsSize = commitment.ParamsSize

// IssueProof appends a proof for the credential at (identity, orgID) to
// the ledger and returns its id. Ids are assigned strictly in sequence
// from 0 with no gaps and no reuse; failed attempts do not consume an id.
// The ledger never grows past the configured ceiling. The referenced
// credential is left untouched.
func (s *State) IssueProof(env Env, identity string, orgID uint64, params []byte) (uint64, error) {
	if uint64(len(s.proofs)) >= s.maxProofs {
		return 0, ErrProofLimitExceeded
	}
	if len(identity) < MinIdentityLength || len(identity) > MaxIdentityLength {
		return 0, ErrUnverifiedIdentity
	}
	if orgID == 0 {
		return 0, ErrInvalidOrganization
	}
	if len(params) != ParamsSize {
		return 0, ErrInvalidParameters
	}

	cred, ok := s.LookupCredential(identity, orgID)
	if !ok {
		return 0, ErrMembershipNotFound
	}
	if cred.Expiry <= env.Time {
		return 0, ErrExpiredMembership
	}

	id := uint64(len(s.proofs))
	s.proofs = append(s.proofs, Proof{
		ID:                   id,
		ParamCommitment:      commitment.Params(params),
		CredentialCommitment: cred.Commitment,
		Issuer:               env.Caller,
		IssuedAt:             env.Time,
	})
	return id, nil
}

// LookupProof returns the ledger entry for id, if it was ever issued.
func (s *State) LookupProof(id uint64) (Proof, bool) {
	if id >= uint64(len(s.proofs)) {
		return Proof{}, false
	}
	return s.proofs[id], true
}

// ProofCount returns how many proofs have been issued so far.
func (s *State) ProofCount() uint64 {
	return uint64(len(s.proofs))
}
