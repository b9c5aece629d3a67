// Package httpapi exposes the membership protocol as JSON endpoints for
// host processes. It is a thin adapter: request shapes are checked against
// JSON schemas, the caller address is taken from the X-Caller-Address
// header, and every rule of the protocol itself stays in the protocol
// package. Handlers are instrumented with OpenTelemetry HTTP middleware.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fitpass/go-membership-proof/protocol"
	"github.com/fitpass/go-membership-proof/receipt"
	"github.com/fitpass/go-membership-proof/service"
)

// CallerHeader carries the caller address resolved by the host's
// authentication layer. Resolving real identities is out of scope here.
const CallerHeader = "X-Caller-Address"

// API adapts a service.Service to HTTP.
type API struct {
	svc *service.Service
}

// NewAPI creates the HTTP adapter around svc.
func NewAPI(svc *service.Service) *API {
	return &API{svc: svc}
}

// Handler returns the instrumented route table.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/authority", a.handleSetAuthority)
	mux.HandleFunc("POST /v1/organizations", a.handleRegisterOrganization)
	mux.HandleFunc("GET /v1/organizations", a.handleListOrganizations)
	mux.HandleFunc("GET /v1/organizations/{id}", a.handleGetOrganization)
	mux.HandleFunc("GET /v1/organizations/{id}/verified", a.handleIsVerified)
	mux.HandleFunc("POST /v1/credentials", a.handleCommit)
	mux.HandleFunc("POST /v1/credentials/revoke", a.handleRevoke)
	mux.HandleFunc("GET /v1/credentials", a.handleGetCredential)
	mux.HandleFunc("POST /v1/proofs", a.handleIssueProof)
	mux.HandleFunc("GET /v1/proofs/{id}", a.handleGetProof)
	mux.HandleFunc("POST /v1/verify", a.handleVerify)

	return otelhttp.NewHandler(mux, "membership-api")
}

func (a *API) handleSetAuthority(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req setAuthorityRequest
	if !decodeBody(w, r, setAuthoritySchema, &req) {
		return
	}
	if !common.IsHexAddress(req.Authority) {
		writeError(w, http.StatusBadRequest, "INVALID_AUTHORITY", "authority is not a valid address")
		return
	}

	if err := a.svc.SetAuthority(caller, common.HexToAddress(req.Authority)); err != nil {
		writeProtocolError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func (a *API) handleRegisterOrganization(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req registerOrganizationRequest
	if !decodeBody(w, r, registerOrganizationSchema, &req) {
		return
	}

	if err := a.svc.RegisterOrganization(caller, req.ID, req.PublicKey, req.Name); err != nil {
		writeProtocolError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func (a *API) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs := a.svc.Organizations()
	out := make([]organizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, newOrganizationResponse(org))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	org, found := a.svc.LookupOrganization(id)
	if !found {
		writeError(w, http.StatusNotFound, "INVALID_ORGANIZATION", "organization not registered")
		return
	}
	writeJSON(w, http.StatusOK, newOrganizationResponse(org))
}

func (a *API) handleIsVerified(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, verifiedResponse{Verified: a.svc.IsVerified(id)})
}

func (a *API) handleCommit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req commitRequest
	if !decodeBody(w, r, commitSchema, &req) {
		return
	}

	digest, err := a.svc.Commit(caller, req.Identity, req.OrganizationID, req.Salt, req.Expiry)
	if err != nil {
		writeProtocolError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, commitResponse{Commitment: digest.Hex()})
}

func (a *API) handleRevoke(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req revokeRequest
	if !decodeBody(w, r, revokeSchema, &req) {
		return
	}

	if err := a.svc.Revoke(caller, req.Identity, req.OrganizationID); err != nil {
		writeProtocolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) handleGetCredential(w http.ResponseWriter, r *http.Request) {
	identity := r.URL.Query().Get("identity")
	orgID, err := strconv.ParseUint(r.URL.Query().Get("organizationId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", "organizationId must be an unsigned integer")
		return
	}

	cred, found := a.svc.LookupCredential(identity, orgID)
	if !found {
		writeError(w, http.StatusNotFound, "MEMBERSHIP_NOT_FOUND", "no credential for identity and organization")
		return
	}
	writeJSON(w, http.StatusOK, newCredentialResponse(cred))
}

func (a *API) handleIssueProof(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req issueProofRequest
	if !decodeBody(w, r, issueProofSchema, &req) {
		return
	}

	id, err := a.svc.IssueProof(caller, req.Identity, req.OrganizationID, req.Params)
	if err != nil {
		writeProtocolError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, issueProofResponse{ProofID: id})
}

func (a *API) handleGetProof(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	proof, found := a.svc.LookupProof(id)
	if !found {
		writeError(w, http.StatusNotFound, "INVALID_PROOF", "proof was never issued")
		return
	}
	writeJSON(w, http.StatusOK, newProofResponse(proof))
}

func (a *API) handleVerify(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req verifyRequest
	if !decodeBody(w, r, verifySchema, &req) {
		return
	}

	result, err := a.svc.Verify(caller, req.ProofID, req.Identity, req.OrganizationID, req.Salt, req.Params)
	if err != nil {
		writeProtocolError(w, err)
		return
	}

	resp := verifyResponse{
		Verified:         result.Verified,
		OrganizationName: result.OrganizationName,
	}

	// Attach a content-addressed receipt of the accepted verification.
	if proof, found := a.svc.LookupProof(req.ProofID); found {
		if rcpt, err := receipt.New(result, proof, req.OrganizationID, a.svc.Now()); err == nil {
			if digest, err := rcpt.Digest(); err == nil {
				resp.Receipt = rcpt.Document()
				resp.ReceiptDigest = digest.Hex()
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func callerAddress(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := r.Header.Get(CallerHeader)
	if !common.IsHexAddress(raw) {
		writeError(w, http.StatusBadRequest, "INVALID_CALLER", "missing or malformed "+CallerHeader+" header")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", "id must be an unsigned integer")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, schema string, out interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", "failed to read request body")
		return false
	}
	if err := validateSchema(schema, body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", "failed to decode request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Error: msg})
}

// writeProtocolError maps the protocol's closed error taxonomy onto HTTP
// statuses and stable machine-readable codes.
func writeProtocolError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, protocol.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "NOT_AUTHORIZED", err.Error())
	case errors.Is(err, protocol.ErrAlreadyConfigured):
		writeError(w, http.StatusConflict, "ALREADY_CONFIGURED", err.Error())
	case errors.Is(err, protocol.ErrInvalidAuthority):
		writeError(w, http.StatusBadRequest, "INVALID_AUTHORITY", err.Error())
	case errors.Is(err, protocol.ErrInvalidOrganization):
		writeError(w, http.StatusBadRequest, "INVALID_ORGANIZATION", err.Error())
	case errors.Is(err, protocol.ErrInvalidParameters):
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETERS", err.Error())
	case errors.Is(err, protocol.ErrInvalidSalt):
		writeError(w, http.StatusBadRequest, "INVALID_SALT", err.Error())
	case errors.Is(err, protocol.ErrUnverifiedIdentity):
		writeError(w, http.StatusBadRequest, "UNVERIFIED_IDENTITY", err.Error())
	case errors.Is(err, protocol.ErrMembershipNotFound):
		writeError(w, http.StatusNotFound, "MEMBERSHIP_NOT_FOUND", err.Error())
	case errors.Is(err, protocol.ErrExpiredMembership):
		writeError(w, http.StatusGone, "EXPIRED_MEMBERSHIP", err.Error())
	case errors.Is(err, protocol.ErrProofLimitExceeded):
		writeError(w, http.StatusTooManyRequests, "PROOF_LIMIT_EXCEEDED", err.Error())
	case errors.Is(err, protocol.ErrInvalidProof):
		writeError(w, http.StatusNotFound, "INVALID_PROOF", err.Error())
	case errors.Is(err, protocol.ErrProofMismatch):
		writeError(w, http.StatusUnprocessableEntity, "PROOF_MISMATCH", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}
