package httpapi

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/fitpass/go-membership-proof/protocol"
)

type setAuthorityRequest struct {
	Authority string `json:"authority"`
}

type registerOrganizationRequest struct {
	ID        uint64        `json:"id"`
	PublicKey hexutil.Bytes `json:"publicKey"`
	Name      string        `json:"name"`
}

type organizationResponse struct {
	ID        uint64        `json:"id"`
	PublicKey hexutil.Bytes `json:"publicKey"`
	Name      string        `json:"name"`
	Verified  bool          `json:"verified"`
}

type commitRequest struct {
	Identity       string        `json:"identity"`
	OrganizationID uint64        `json:"organizationId"`
	Salt           hexutil.Bytes `json:"salt"`
	Expiry         int64         `json:"expiry"`
}

type commitResponse struct {
	Commitment string `json:"commitment"`
}

type revokeRequest struct {
	Identity       string `json:"identity"`
	OrganizationID uint64 `json:"organizationId"`
}

type credentialResponse struct {
	Commitment string `json:"commitment"`
	Expiry     int64  `json:"expiry"`
	Active     bool   `json:"active"`
	Committer  string `json:"committer"`
}

type issueProofRequest struct {
	Identity       string        `json:"identity"`
	OrganizationID uint64        `json:"organizationId"`
	Params         hexutil.Bytes `json:"params"`
}

type issueProofResponse struct {
	ProofID uint64 `json:"proofId"`
}

type proofResponse struct {
	ID                   uint64 `json:"id"`
	ParamCommitment      string `json:"paramCommitment"`
	CredentialCommitment string `json:"credentialCommitment"`
	Issuer               string `json:"issuer"`
	IssuedAt             int64  `json:"issuedAt"`
}

type verifyRequest struct {
	ProofID        uint64        `json:"proofId"`
	Identity       string        `json:"identity"`
	OrganizationID uint64        `json:"organizationId"`
	Salt           hexutil.Bytes `json:"salt"`
	Params         hexutil.Bytes `json:"params"`
}

type verifyResponse struct {
	Verified         bool                   `json:"verified"`
	OrganizationName string                 `json:"organizationName"`
	Receipt          map[string]interface{} `json:"receipt,omitempty"`
	ReceiptDigest    string                 `json:"receiptDigest,omitempty"`
}

type verifiedResponse struct {
	Verified bool `json:"verified"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func newOrganizationResponse(org protocol.Organization) organizationResponse {
	return organizationResponse{
		ID:        org.ID,
		PublicKey: hexutil.Bytes(org.PublicKey),
		Name:      org.Name,
		Verified:  org.Verified,
	}
}

func newCredentialResponse(cred protocol.Credential) credentialResponse {
	return credentialResponse{
		Commitment: cred.Commitment.Hex(),
		Expiry:     cred.Expiry,
		Active:     cred.Active,
		Committer:  cred.Committer.Hex(),
	}
}

func newProofResponse(proof protocol.Proof) proofResponse {
	return proofResponse{
		ID:                   proof.ID,
		ParamCommitment:      proof.ParamCommitment.Hex(),
		CredentialCommitment: proof.CredentialCommitment.Hex(),
		Issuer:               proof.Issuer.Hex(),
		IssuedAt:             proof.IssuedAt,
	}
}
