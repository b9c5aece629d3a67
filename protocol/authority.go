package protocol

import "github.com/ethereum/go-ethereum/common"

// SetAuthority assigns the single address permitted to approve
// organizations and to gate revocation. The slot is single-assignment:
// once set it can never be changed or cleared, and the zero address is
// rejected.
func (s *State) SetAuthority(env Env, authority common.Address) error {
	if s.configured {
		return ErrAlreadyConfigured
	}
	if authority == (common.Address{}) {
		return ErrInvalidAuthority
	}

	s.authority = authority
	s.configured = true
	return nil
}

// Authority returns the configured authority address and whether the slot
// has been assigned yet.
func (s *State) Authority() (common.Address, bool) {
	return s.authority, s.configured
}

// isAuthority reports whether addr is the configured authority.
func (s *State) isAuthority(addr common.Address) bool {
	return s.configured && addr == s.authority
}
