package httpapi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request bodies are structurally validated against JSON schemas before
// decoding. Value rules (lengths, ranges, authorization) stay in the
// protocol package; the schemas only reject malformed shapes early with a
// readable message.

const hexPattern = `^0x[0-9a-fA-F]*$`

var setAuthoritySchema = fmt.Sprintf(`{
	"type": "object",
	"required": ["authority"],
	"properties": {
		"authority": {"type": "string", "pattern": "%s"}
	}
}`, hexPattern)

var registerOrganizationSchema = fmt.Sprintf(`{
	"type": "object",
	"required": ["id", "publicKey", "name"],
	"properties": {
		"id": {"type": "integer", "minimum": 0},
		"publicKey": {"type": "string", "pattern": "%s"},
		"name": {"type": "string"}
	}
}`, hexPattern)

var commitSchema = fmt.Sprintf(`{
	"type": "object",
	"required": ["identity", "organizationId", "salt", "expiry"],
	"properties": {
		"identity": {"type": "string"},
		"organizationId": {"type": "integer", "minimum": 0},
		"salt": {"type": "string", "pattern": "%s"},
		"expiry": {"type": "integer"}
	}
}`, hexPattern)

var revokeSchema = `{
	"type": "object",
	"required": ["identity", "organizationId"],
	"properties": {
		"identity": {"type": "string"},
		"organizationId": {"type": "integer", "minimum": 0}
	}
}`

var issueProofSchema = fmt.Sprintf(`{
	"type": "object",
	"required": ["identity", "organizationId", "params"],
	"properties": {
		"identity": {"type": "string"},
		"organizationId": {"type": "integer", "minimum": 0},
		"params": {"type": "string", "pattern": "%s"}
	}
}`, hexPattern)

var verifySchema = fmt.Sprintf(`{
	"type": "object",
	"required": ["proofId", "identity", "organizationId", "salt", "params"],
	"properties": {
		"proofId": {"type": "integer", "minimum": 0},
		"identity": {"type": "string"},
		"organizationId": {"type": "integer", "minimum": 0},
		"salt": {"type": "string", "pattern": "%s"},
		"params": {"type": "string", "pattern": "%s"}
	}
}`, hexPattern, hexPattern)

// validateSchema checks body against the given JSON schema and flattens
// any violations into a single error.
func validateSchema(schema string, body []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("request failed schema validation: %s", strings.Join(msgs, "; "))
	}

	return nil
}
