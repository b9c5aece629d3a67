package protocol

import (
	"unicode/utf8"

	"golang.org/x/exp/maps"

	"github.com/fitpass/go-membership-proof/keys"
)

const (
	// MinNameLength and MaxNameLength bound an organization name, counted
	// in Unicode code points.
	MinNameLength = 1
	MaxNameLength = 50

	// PublicKeySize is the required organization public key length.
	PublicKeySize = keys.CompressedPublicKeySize
)

// RegisterOrganization inserts or overwrites the organization record for
// id. Only the configured authority may register; re-registering an id
// replaces its key and name. Registered organizations are verified
// immediately and are never deleted.
//
// The public key is checked for length only, not for being a valid curve
// point; hosts wanting strict keys should run keys.ParsePublicKey first.
func (s *State) RegisterOrganization(env Env, id uint64, publicKey []byte, name string) error {
	if !s.isAuthority(env.Caller) {
		return ErrNotAuthorized
	}
	if id == 0 {
		return ErrInvalidOrganization
	}
	if len(publicKey) != PublicKeySize {
		return ErrInvalidParameters
	}
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return ErrInvalidOrganization
	}

	key := make([]byte, PublicKeySize)
	copy(key, publicKey)

	s.organizations[id] = Organization{
		ID:        id,
		PublicKey: key,
		Name:      name,
		Verified:  true,
	}
	return nil
}

// IsVerified reports whether id belongs to a verified organization.
// Unknown ids are simply false, never an error.
func (s *State) IsVerified(id uint64) bool {
	org, ok := s.organizations[id]
	return ok && org.Verified
}

// LookupOrganization returns the organization record for id, if present.
// The returned key slice is a copy.
func (s *State) LookupOrganization(id uint64) (Organization, bool) {
	org, ok := s.organizations[id]
	if !ok {
		return Organization{}, false
	}
	return copyOrganization(org), true
}

// OrganizationIDs returns the ids of all registered organizations in no
// particular order.
func (s *State) OrganizationIDs() []uint64 {
	return maps.Keys(s.organizations)
}

func copyOrganization(org Organization) Organization {
	key := make([]byte, len(org.PublicKey))
	copy(key, org.PublicKey)
	org.PublicKey = key
	return org
}
