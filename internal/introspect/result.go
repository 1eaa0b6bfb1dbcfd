// Package introspect implements the outbound OAuth2 token introspection call
// (RFC 7662) against the identity provider.
package introspect

import (
	"encoding/json"
	"fmt"
)

// Audience is the aud claim of an introspection response, which providers
// return as either a single string or a list of strings.
type Audience []string

// UnmarshalJSON accepts both the string and the array form.
func (a *Audience) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = Audience{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("aud is neither a string nor a list of strings: %w", err)
	}
	*a = Audience(many)
	return nil
}

// Contains reports whether the audience includes v.
func (a Audience) Contains(v string) bool {
	for _, item := range a {
		if item == v {
			return true
		}
	}
	return false
}

// Result is the token metadata returned by the introspection endpoint.
// Only Active is guaranteed to be present; everything else is provider
// dependent. Results are produced once per validation attempt and never
// cached.
type Result struct {
	Active    bool     `json:"active"`
	Sub       string   `json:"sub,omitempty"`
	UID       string   `json:"uid,omitempty"`
	Aud       Audience `json:"aud,omitempty"`
	Scope     string   `json:"scope,omitempty"`
	ClientID  string   `json:"client_id,omitempty"`
	TokenType string   `json:"token_type,omitempty"`
}

// Principal returns the identifier to use as the decision principal:
// sub, falling back to uid, falling back to "user".
func (r *Result) Principal() string {
	if r.Sub != "" {
		return r.Sub
	}
	if r.UID != "" {
		return r.UID
	}
	return "user"
}
