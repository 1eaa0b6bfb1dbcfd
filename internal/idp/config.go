// Package idp holds the identity-provider configuration and the resolver
// that loads it from the secret store.
package idp

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSecretIDNotSet is returned when the resolver was constructed without a
// secret identifier, i.e. the deployment is missing IDP_SECRET_ARN.
var ErrSecretIDNotSet = errors.New("identity provider secret id is not set")

// ProviderConfig is the identity-provider configuration document stored in
// the secret store. Audience and RequiredScopes are optional policy inputs;
// when unset the corresponding check is skipped.
type ProviderConfig struct {
	ClientID       string   `json:"client_id"`
	ClientSecret   string   `json:"client_secret"`
	Issuer         string   `json:"issuer,omitempty"`
	Audience       string   `json:"audience,omitempty"`
	RequiredScopes []string `json:"required_scopes,omitempty"`
}

// Complete reports whether the configuration carries the client credentials
// required to call the introspection endpoint.
func (c *ProviderConfig) Complete() bool {
	return c != nil && c.ClientID != "" && c.ClientSecret != ""
}

// parseDocument decodes a secret payload into a ProviderConfig. The store
// hands back either a UTF-8 JSON document or a base64-encoded one; try plain
// JSON first and fall back to base64.
func parseDocument(raw []byte) (*ProviderConfig, error) {
	var cfg ProviderConfig
	if err := json.Unmarshal(raw, &cfg); err == nil {
		return &cfg, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("secret is neither JSON nor base64-encoded JSON: %w", err)
	}
	if err := json.Unmarshal(decoded, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse identity provider configuration: %w", err)
	}
	return &cfg, nil
}
