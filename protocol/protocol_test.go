package protocol

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	authorityAddr = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	memberAddr    = common.HexToAddress("0x00000000000000000000000000000000000000B2")
	strangerAddr  = common.HexToAddress("0x00000000000000000000000000000000000000C3")
)

const (
	testIdentity = "did:example:123"
	testOrgID    = uint64(1)
	testOrgName  = "Gym"
)

func testSalt() []byte {
	return bytes.Repeat([]byte{0x5a}, SaltSize)
}

func testParams() []byte {
	return bytes.Repeat([]byte{0x7f}, ParamsSize)
}

func testPublicKey() []byte {
	key := make([]byte, PublicKeySize)
	key[0] = 0x02
	return key
}

func at(caller common.Address, now int64) Env {
	return Env{Caller: caller, Time: now}
}

// newConfiguredState returns a state with the authority set and one
// verified organization registered under testOrgID.
func newConfiguredState(t *testing.T, cfg Config) *State {
	t.Helper()

	st := NewState(cfg)
	require.NoError(t, st.SetAuthority(at(authorityAddr, 0), authorityAddr))
	require.NoError(t, st.RegisterOrganization(at(authorityAddr, 0), testOrgID, testPublicKey(), testOrgName))
	return st
}

// newCommittedState additionally commits testIdentity against testOrgID at
// time 100 with expiry 200 and returns the state.
func newCommittedState(t *testing.T, cfg Config) *State {
	t.Helper()

	st := newConfiguredState(t, cfg)
	_, err := st.Commit(at(memberAddr, 100), testIdentity, testOrgID, testSalt(), 200)
	require.NoError(t, err)
	return st
}
