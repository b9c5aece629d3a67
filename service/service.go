// Package service hosts the protocol state behind a single-writer lock.
// Mutating calls are serialized; lookups and verification run concurrently
// against a consistent snapshot. Logical time comes from a host-supplied
// clock and the caller address is passed per call, so embedding processes
// keep full control over identity resolution and time.
package service

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/slices"

	"github.com/fitpass/go-membership-proof/commitment"
	"github.com/fitpass/go-membership-proof/protocol"
)

// Clock supplies the current logical time. It must be non-decreasing
// across calls.
type Clock func() int64

// Service wraps a protocol.State for concurrent hosts.
type Service struct {
	mu    sync.RWMutex
	state *protocol.State
	clock Clock
}

// New creates a Service around a fresh protocol state.
func New(cfg protocol.Config, clock Clock) *Service {
	return &Service{
		state: protocol.NewState(cfg),
		clock: clock,
	}
}

func (s *Service) env(caller common.Address) protocol.Env {
	return protocol.Env{Caller: caller, Time: s.clock()}
}

// Now returns the host clock's current logical time.
func (s *Service) Now() int64 {
	return s.clock()
}

// SetAuthority assigns the one-time authority address.
func (s *Service) SetAuthority(caller, authority common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SetAuthority(s.env(caller), authority)
}

// Authority returns the configured authority, if set.
func (s *Service) Authority() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authority()
}

// RegisterOrganization registers or overwrites an organization.
func (s *Service) RegisterOrganization(caller common.Address, id uint64, publicKey []byte, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RegisterOrganization(s.env(caller), id, publicKey, name)
}

// IsVerified reports whether id is a verified organization.
func (s *Service) IsVerified(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsVerified(id)
}

// LookupOrganization returns the organization registered under id.
func (s *Service) LookupOrganization(id uint64) (protocol.Organization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LookupOrganization(id)
}

// Organizations returns all registered organizations ordered by id.
func (s *Service) Organizations() []protocol.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.state.OrganizationIDs()
	slices.Sort(ids)

	orgs := make([]protocol.Organization, 0, len(ids))
	for _, id := range ids {
		if org, ok := s.state.LookupOrganization(id); ok {
			orgs = append(orgs, org)
		}
	}
	return orgs
}

// Commit records a membership commitment and returns it.
func (s *Service) Commit(caller common.Address, identity string, orgID uint64, salt []byte, expiry int64) (commitment.Digest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Commit(s.env(caller), identity, orgID, salt, expiry)
}

// Revoke marks a credential inactive.
func (s *Service) Revoke(caller common.Address, identity string, orgID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Revoke(s.env(caller), identity, orgID)
}

// LookupCredential returns the stored credential, if any.
func (s *Service) LookupCredential(identity string, orgID uint64) (protocol.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LookupCredential(identity, orgID)
}

// IssueProof appends a proof to the ledger and returns its id. The id is
// always surfaced to the caller on success so retries after an ambiguous
// host failure can be reconciled against the ledger.
func (s *Service) IssueProof(caller common.Address, identity string, orgID uint64, params []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IssueProof(s.env(caller), identity, orgID, params)
}

// LookupProof returns the ledger entry for id, if issued.
func (s *Service) LookupProof(id uint64) (protocol.Proof, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LookupProof(id)
}

// ProofCount returns the number of proofs issued so far.
func (s *Service) ProofCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ProofCount()
}

// Verify checks presented secret material against an issued proof. Reads
// only; safe to call concurrently with other reads.
func (s *Service) Verify(caller common.Address, proofID uint64, identity string, orgID uint64, salt, params []byte) (protocol.VerificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Verify(s.env(caller), proofID, identity, orgID, salt, params)
}
