package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full commit / issue / verify round trip: authority A registers "Gym" as
// organization 1, the member commits at time 100 with expiry 200, issues
// proof 0 and verifies it with the original salt and parameters.
func TestVerifyRoundTrip(t *testing.T) {
	st := newCommittedState(t, Config{})

	id, err := st.IssueProof(at(memberAddr, 110), testIdentity, testOrgID, testParams())
	require.NoError(t, err)
	require.Equal(t, uint64(0), id)

	result, err := st.Verify(at(strangerAddr, 120), id, testIdentity, testOrgID, testSalt(), testParams())
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, testOrgName, result.OrganizationName)
}

func TestVerifyUnknownProof(t *testing.T) {
	st := newCommittedState(t, Config{})

	_, err := st.Verify(at(strangerAddr, 120), 999, testIdentity, testOrgID, testSalt(), testParams())
	assert.ErrorIs(t, err, ErrInvalidProof)
}

// Wrong secret material is always reported as ErrProofMismatch, never as
// a more specific error, so the verifier cannot tell which half failed.
func TestVerifyBinding(t *testing.T) {
	st := newCommittedState(t, Config{})

	id, err := st.IssueProof(at(memberAddr, 110), testIdentity, testOrgID, testParams())
	require.NoError(t, err)

	wrongSalt := testSalt()
	wrongSalt[0] ^= 0x01

	wrongParams := testParams()
	wrongParams[63] ^= 0x01

	tests := []struct {
		name   string
		salt   []byte
		params []byte
	}{
		{name: "wrong salt", salt: wrongSalt, params: testParams()},
		{name: "wrong params", salt: testSalt(), params: wrongParams},
		{name: "both wrong", salt: wrongSalt, params: wrongParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.Verify(at(strangerAddr, 120), id, testIdentity, testOrgID, tt.salt, tt.params)
			assert.ErrorIs(t, err, ErrProofMismatch)
		})
	}
}

func TestVerifyValidation(t *testing.T) {
	st := newCommittedState(t, Config{})

	id, err := st.IssueProof(at(memberAddr, 110), testIdentity, testOrgID, testParams())
	require.NoError(t, err)

	tests := []struct {
		name     string
		identity string
		orgID    uint64
		salt     []byte
		params   []byte
		now      int64
		wantErr  error
	}{
		{
			name:     "no credential for identity",
			identity: "did:example:other",
			orgID:    testOrgID,
			salt:     testSalt(),
			params:   testParams(),
			now:      120,
			wantErr:  ErrMembershipNotFound,
		},
		{
			// The credential lookup precedes the length check, so an
			// undersized identity surfaces as a missing membership.
			name:     "identity too short",
			identity: "short:1",
			orgID:    testOrgID,
			salt:     testSalt(),
			params:   testParams(),
			now:      120,
			wantErr:  ErrMembershipNotFound,
		},
		{
			name:     "salt wrong length",
			identity: testIdentity,
			orgID:    testOrgID,
			salt:     make([]byte, 15),
			params:   testParams(),
			now:      120,
			wantErr:  ErrInvalidSalt,
		},
		{
			name:     "params wrong length",
			identity: testIdentity,
			orgID:    testOrgID,
			salt:     testSalt(),
			params:   make([]byte, 63),
			now:      120,
			wantErr:  ErrInvalidParameters,
		},
		{
			name:     "credential expired",
			identity: testIdentity,
			orgID:    testOrgID,
			salt:     testSalt(),
			params:   testParams(),
			now:      200,
			wantErr:  ErrExpiredMembership,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.Verify(at(strangerAddr, tt.now), id, tt.identity, tt.orgID, tt.salt, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// A proof that verified before expiry is rejected after it, even though
// nothing about the proof itself changed.
func TestVerifyExpiresWithCredential(t *testing.T) {
	st := newCommittedState(t, Config{})

	id, err := st.IssueProof(at(memberAddr, 110), testIdentity, testOrgID, testParams())
	require.NoError(t, err)

	_, err = st.Verify(at(strangerAddr, 199), id, testIdentity, testOrgID, testSalt(), testParams())
	require.NoError(t, err)

	_, err = st.Verify(at(strangerAddr, 200), id, testIdentity, testOrgID, testSalt(), testParams())
	assert.ErrorIs(t, err, ErrExpiredMembership)
}

// Verification checks the digests copied into the proof at issuance, not
// the live credential, so re-committing with a new salt does not
// invalidate proofs issued against the old commitment.
func TestVerifySurvivesRecommit(t *testing.T) {
	st := newCommittedState(t, Config{})

	id, err := st.IssueProof(at(memberAddr, 110), testIdentity, testOrgID, testParams())
	require.NoError(t, err)

	newSalt := testSalt()
	newSalt[0] ^= 0xff
	_, err = st.Commit(at(memberAddr, 120), testIdentity, testOrgID, newSalt, 300)
	require.NoError(t, err)

	result, err := st.Verify(at(strangerAddr, 130), id, testIdentity, testOrgID, testSalt(), testParams())
	require.NoError(t, err)
	assert.True(t, result.Verified)
}

// Revocation flips the credential's status flag but is not consulted by
// verification; revoked credentials stay queryable and their proofs keep
// verifying until expiry.
func TestVerifyIgnoresRevocation(t *testing.T) {
	st := newCommittedState(t, Config{})

	id, err := st.IssueProof(at(memberAddr, 110), testIdentity, testOrgID, testParams())
	require.NoError(t, err)

	require.NoError(t, st.Revoke(at(memberAddr, 120), testIdentity, testOrgID))

	result, err := st.Verify(at(strangerAddr, 130), id, testIdentity, testOrgID, testSalt(), testParams())
	require.NoError(t, err)
	assert.True(t, result.Verified)
}
