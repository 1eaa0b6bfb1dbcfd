// Package trace carries a per-request id through the local dev server so log
// lines from one request can be correlated. In Lambda the platform request id
// fills this role instead.
package trace

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const key ctxKey = 1

// Header is the inbound/outbound request id header.
const Header = "X-Request-Id"

// NewID generates a fresh request id.
func NewID() string {
	return uuid.NewString()
}

// With stores id on ctx.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

// From returns the request id on ctx, or "".
func From(ctx context.Context) string {
	if s, ok := ctx.Value(key).(string); ok {
		return s
	}
	return ""
}
