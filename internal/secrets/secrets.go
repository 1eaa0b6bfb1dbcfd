// Package secrets provides read-only access to the external secret store.
//
// The gateway only ever fetches secrets by identifier; creation, rotation and
// deletion belong to the secret-management service and are not modelled here.
package secrets

import (
	"context"
	"errors"
)

// ErrSecretNotFound is returned when the requested secret does not exist in
// the store.
var ErrSecretNotFound = errors.New("secret not found")

// ErrEmptySecret is returned when the store resolves the identifier but the
// secret carries no value.
var ErrEmptySecret = errors.New("secret has no value")

// Provider describes a type which can fetch secrets by identifier.
//
// Implementations return the raw secret payload; callers are responsible for
// interpreting it (the identity-provider configuration is a JSON document,
// possibly base64-encoded, see the idp package).
type Provider interface {
	GetSecret(ctx context.Context, id string) ([]byte, error)
}
