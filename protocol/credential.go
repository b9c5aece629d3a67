package protocol

import "github.com/fitpass/go-membership-proof/commitment"

const (
	// MinIdentityLength and MaxIdentityLength bound the private identity
	// string, in bytes.
	MinIdentityLength = 8
	MaxIdentityLength = 64

	// SaltSize is the required salt length for Commit and Verify.
	SaltSize = commitment.SaltSize
)

// Commit records the commitment Keccak256(identity || salt) for
// (identity, orgID) with the given expiry and returns it. The salt is not
// stored. Any prior credential at the key is overwritten unconditionally,
// whoever committed it; anyone who knows the (identity, organization)
// pair can therefore replace another caller's credential. Revoked
// credentials are re-activated by a fresh commit.
func (s *State) Commit(env Env, identity string, orgID uint64, salt []byte, expiry int64) (commitment.Digest, error) {
	if len(identity) < MinIdentityLength || len(identity) > MaxIdentityLength {
		return commitment.Digest{}, ErrUnverifiedIdentity
	}
	if orgID == 0 {
		return commitment.Digest{}, ErrInvalidOrganization
	}
	if len(salt) != SaltSize {
		return commitment.Digest{}, ErrInvalidSalt
	}
	if expiry <= env.Time {
		return commitment.Digest{}, ErrExpiredMembership
	}
	if !s.IsVerified(orgID) {
		return commitment.Digest{}, ErrInvalidOrganization
	}

	digest := commitment.Identity(identity, salt)
	s.credentials[credentialKey{identity: identity, orgID: orgID}] = Credential{
		Commitment: digest,
		Expiry:     expiry,
		Active:     true,
		Committer:  env.Caller,
	}
	return digest, nil
}

// Revoke marks the credential for (identity, orgID) inactive. Permitted
// for the configured authority and for the credential's original
// committer. Commitment and expiry are left untouched, and revoking an
// already-revoked credential succeeds again.
func (s *State) Revoke(env Env, identity string, orgID uint64) error {
	key := credentialKey{identity: identity, orgID: orgID}
	cred, ok := s.credentials[key]
	if !ok {
		return ErrMembershipNotFound
	}
	if !s.isAuthority(env.Caller) && env.Caller != cred.Committer {
		return ErrNotAuthorized
	}

	cred.Active = false
	s.credentials[key] = cred
	return nil
}

// LookupCredential returns the credential stored for (identity, orgID),
// if any. Revoked credentials remain queryable indefinitely.
func (s *State) LookupCredential(identity string, orgID uint64) (Credential, bool) {
	cred, ok := s.credentials[credentialKey{identity: identity, orgID: orgID}]
	return cred, ok
}
