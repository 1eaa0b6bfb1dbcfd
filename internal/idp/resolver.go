package idp

import (
	"context"
	"fmt"
	"sync"

	"github.com/vitalsync/fhir-gateway/internal/logger"
	"github.com/vitalsync/fhir-gateway/internal/secrets"
)

// Resolver loads the identity-provider configuration from the secret store
// and memoizes it for its own lifetime. In Lambda the resolver lives in a
// package-scope-free handler struct created at cold start, so the memo has
// process lifetime and is invalidated only by a new execution environment.
type Resolver struct {
	provider secrets.Provider
	secretID string

	mu     sync.Mutex
	cached *ProviderConfig
}

// NewResolver creates a Resolver reading secretID from provider. An empty
// secretID is allowed at construction time; Resolve reports it.
func NewResolver(provider secrets.Provider, secretID string) *Resolver {
	return &Resolver{provider: provider, secretID: secretID}
}

// SecretID returns the configured secret identifier, empty when unset.
func (r *Resolver) SecretID() string {
	return r.secretID
}

// Resolve returns the identity-provider configuration, fetching it from the
// secret store on first use. The mutex gives single-flight semantics: two
// concurrent cold invocations issue exactly one store call.
func (r *Resolver) Resolve(ctx context.Context) (*ProviderConfig, error) {
	if r.secretID == "" {
		return nil, ErrSecretIDNotSet
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return r.cached, nil
	}

	raw, err := r.provider.GetSecret(ctx, r.secretID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve identity provider configuration: %w", err)
	}

	cfg, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}

	logger.Infow("resolved identity provider configuration", "secret_id", r.secretID)
	r.cached = cfg
	return cfg, nil
}
