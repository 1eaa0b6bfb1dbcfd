// Package token parses bearer credentials out of inbound authorizer requests.
//
// Extraction is syntactic only: the token must look like a JWT (three dot
// separated base64url segments) but no signature or claim checks happen here.
// Cryptographic validity is established by the identity provider's
// introspection endpoint.
package token

import (
	"regexp"
	"strings"
)

const bearerPrefix = "bearer "

// jwtShape matches header.payload.signature where the signature segment may be
// empty (unsecured JWTs as emitted by some test IdPs).
var jwtShape = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*$`)

// Extract pulls a bearer token out of a raw Authorization header value.
// The "Bearer " prefix is optional and case-insensitive. Returns false when
// the header is absent, empty after trimming, or does not match the JWT
// shape; a missing token is an expected outcome, not an error.
func Extract(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	tok := header
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		tok = header[len(bearerPrefix):]
	}
	tok = strings.TrimSpace(tok)

	if tok == "" || !jwtShape.MatchString(tok) {
		return "", false
	}
	return tok, true
}

// ClientHint returns the caller-asserted client id from the x-client-id
// header (matched case-insensitively) or, failing that, the client_id query
// parameter. The hint is used for logging and context enrichment only; it
// never influences the authorization decision.
func ClientHint(headers, query map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, "x-client-id") && v != "" {
			return v
		}
	}
	return query["client_id"]
}
