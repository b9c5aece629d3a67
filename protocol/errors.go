package protocol

import "errors"

// Every operation failure is one of the sentinel errors below. Callers
// discriminate with errors.Is; no other error values escape the package.
var (
	// ErrNotAuthorized is returned when the caller is not permitted to
	// perform the requested mutation.
	ErrNotAuthorized = errors.New("protocol: caller not authorized")

	// ErrAlreadyConfigured is returned when the authority slot has
	// already been assigned.
	ErrAlreadyConfigured = errors.New("protocol: authority already configured")

	// ErrInvalidAuthority is returned when the proposed authority is the
	// zero address.
	ErrInvalidAuthority = errors.New("protocol: invalid authority address")

	// ErrInvalidOrganization is returned for a zero organization id, an
	// out-of-range organization name, or an unregistered organization.
	ErrInvalidOrganization = errors.New("protocol: invalid organization")

	// ErrInvalidParameters is returned when a public key or presented
	// parameter blob has the wrong length.
	ErrInvalidParameters = errors.New("protocol: invalid parameters")

	// ErrInvalidSalt is returned when a salt is not exactly SaltSize bytes.
	ErrInvalidSalt = errors.New("protocol: invalid salt")

	// ErrUnverifiedIdentity is returned when an identity string is outside
	// the [MinIdentityLength, MaxIdentityLength] range.
	ErrUnverifiedIdentity = errors.New("protocol: unverified identity")

	// ErrMembershipNotFound is returned when no credential exists for the
	// (identity, organization) pair.
	ErrMembershipNotFound = errors.New("protocol: membership not found")

	// ErrExpiredMembership is returned when a credential expiry is not in
	// the future relative to the supplied logical time.
	ErrExpiredMembership = errors.New("protocol: expired membership")

	// ErrProofLimitExceeded is returned when the proof ledger has reached
	// its configured ceiling.
	ErrProofLimitExceeded = errors.New("protocol: proof limit exceeded")

	// ErrInvalidProof is returned when a proof id was never issued.
	ErrInvalidProof = errors.New("protocol: invalid proof")

	// ErrProofMismatch is returned when the presented secret material does
	// not reproduce the recorded commitments.
	ErrProofMismatch = errors.New("protocol: proof mismatch")
)
