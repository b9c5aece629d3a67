package protocol

import "github.com/fitpass/go-membership-proof/commitment"

// VerificationResult is the successful outcome of Verify.
type VerificationResult struct {
	Verified         bool
	OrganizationName string
}

// Verify checks freshly supplied secret material against the proof
// recorded under proofID. It reads state but never mutates it.
//
// Acceptance requires two independent equalities:
//
//	Keccak256(identity || salt) == proof.CredentialCommitment
//	Keccak256(params)           == proof.ParamCommitment
//
// The first binds the salt and identity presented now to the commitment
// captured when the proof was issued; the second binds the presented
// parameters to the parameter commitment issued then. Either failing is
// reported as ErrProofMismatch, never as anything more specific, so a
// verifier learns nothing about which half was wrong.
func (s *State) Verify(env Env, proofID uint64, identity string, orgID uint64, salt, params []byte) (VerificationResult, error) {
	proof, ok := s.LookupProof(proofID)
	if !ok {
		return VerificationResult{}, ErrInvalidProof
	}

	cred, ok := s.LookupCredential(identity, orgID)
	if !ok {
		return VerificationResult{}, ErrMembershipNotFound
	}

	if len(identity) < MinIdentityLength || len(identity) > MaxIdentityLength {
		return VerificationResult{}, ErrUnverifiedIdentity
	}
	if orgID == 0 {
		return VerificationResult{}, ErrInvalidOrganization
	}
	if len(salt) != SaltSize {
		return VerificationResult{}, ErrInvalidSalt
	}
	if len(params) != ParamsSize {
		return VerificationResult{}, ErrInvalidParameters
	}
	if cred.Expiry <= env.Time {
		return VerificationResult{}, ErrExpiredMembership
	}

	candidate := commitment.Identity(identity, salt)
	presented := commitment.Params(params)
	if candidate != proof.CredentialCommitment || presented != proof.ParamCommitment {
		return VerificationResult{}, ErrProofMismatch
	}

	// Unreachable when the proof was issued through IssueProof, which
	// requires a credential against a verified organization.
	org, ok := s.LookupOrganization(orgID)
	if !ok {
		return VerificationResult{}, ErrInvalidOrganization
	}

	return VerificationResult{Verified: true, OrganizationName: org.Name}, nil
}
