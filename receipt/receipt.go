// Package receipt renders a successful verification as a portable JSON-LD
// document that downstream systems can archive or countersign. The
// document is canonicalized with URDNA2015 and content-addressed with
// Keccak256, so two receipts describing the same verification always hash
// to the same digest regardless of key order or whitespace.
package receipt

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/piprate/json-gold/ld"

	"github.com/fitpass/go-membership-proof/commitment"
	"github.com/fitpass/go-membership-proof/protocol"
)

// receiptVocab is the vocabulary all receipt terms expand into. The
// context is inlined so canonicalization never fetches remote documents.
const receiptVocab = "https://schema.fitpass.io/membership/receipt#"

var receiptContext = map[string]interface{}{
	"type":                 receiptVocab + "type",
	"proofId":              receiptVocab + "proofId",
	"organizationId":       receiptVocab + "organizationId",
	"organizationName":     receiptVocab + "organizationName",
	"credentialCommitment": receiptVocab + "credentialCommitment",
	"paramCommitment":      receiptVocab + "paramCommitment",
	"issuer":               receiptVocab + "issuer",
	"issuedAt":             receiptVocab + "issuedAt",
	"verifiedAt":           receiptVocab + "verifiedAt",
}

// Receipt captures one accepted verification.
type Receipt struct {
	ProofID              uint64
	OrganizationID       uint64
	OrganizationName     string
	CredentialCommitment commitment.Digest
	ParamCommitment      commitment.Digest
	Issuer               common.Address
	IssuedAt             int64
	VerifiedAt           int64
}

// New builds a receipt from a verification result and the proof it
// accepted. Only verified results can be turned into receipts.
func New(result protocol.VerificationResult, proof protocol.Proof, orgID uint64, verifiedAt int64) (*Receipt, error) {
	if !result.Verified {
		return nil, fmt.Errorf("receipt: cannot build a receipt for an unverified result")
	}

	return &Receipt{
		ProofID:              proof.ID,
		OrganizationID:       orgID,
		OrganizationName:     result.OrganizationName,
		CredentialCommitment: proof.CredentialCommitment,
		ParamCommitment:      proof.ParamCommitment,
		Issuer:               proof.Issuer,
		IssuedAt:             proof.IssuedAt,
		VerifiedAt:           verifiedAt,
	}, nil
}

// Document returns the receipt as a JSON-LD document. Numeric fields are
// carried as strings so canonicalization is stable across JSON decoders.
func (r *Receipt) Document() map[string]interface{} {
	return map[string]interface{}{
		"@context":             receiptContext,
		"type":                 "MembershipVerificationReceipt",
		"proofId":              strconv.FormatUint(r.ProofID, 10),
		"organizationId":       strconv.FormatUint(r.OrganizationID, 10),
		"organizationName":     r.OrganizationName,
		"credentialCommitment": r.CredentialCommitment.Hex(),
		"paramCommitment":      r.ParamCommitment.Hex(),
		"issuer":               r.Issuer.Hex(),
		"issuedAt":             strconv.FormatInt(r.IssuedAt, 10),
		"verifiedAt":           strconv.FormatInt(r.VerifiedAt, 10),
	}
}

// Canonicalize normalizes the receipt document to URDNA2015 n-quads.
func (r *Receipt) Canonicalize() ([]byte, error) {
	processor := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = "application/n-quads"
	options.Algorithm = ld.AlgorithmURDNA2015

	canonicalized, err := processor.Normalize(r.Document(), options)
	if err != nil {
		return nil, fmt.Errorf("receipt: failed to normalize document: %w", err)
	}

	return []byte(canonicalized.(string)), nil
}

// Digest returns the Keccak256 content address of the canonical receipt.
func (r *Receipt) Digest() (commitment.Digest, error) {
	canonical, err := r.Canonicalize()
	if err != nil {
		return commitment.Digest{}, err
	}
	return commitment.Sum(canonical), nil
}
