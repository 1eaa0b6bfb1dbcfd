// Package policy evaluates introspection results against the configured
// audience and required-scope policy.
package policy

import (
	"strings"

	"github.com/vitalsync/fhir-gateway/internal/idp"
	"github.com/vitalsync/fhir-gateway/internal/introspect"
	"github.com/vitalsync/fhir-gateway/internal/logger"
)

// Evaluate reports whether res satisfies the audience and scope policy in
// cfg. Checks are only applied when configured, so an empty policy is
// vacuously true. Mismatches are logged server-side but never returned as
// errors; the caller only ever sees the boolean.
func Evaluate(res *introspect.Result, cfg *idp.ProviderConfig) bool {
	if cfg.Audience != "" && !res.Aud.Contains(cfg.Audience) {
		logger.Warnw("token audience mismatch",
			"expected", cfg.Audience,
			"got", []string(res.Aud),
		)
		return false
	}

	if len(cfg.RequiredScopes) > 0 {
		granted := make(map[string]struct{})
		for _, s := range strings.Fields(res.Scope) {
			granted[s] = struct{}{}
		}

		var missing []string
		for _, want := range cfg.RequiredScopes {
			if _, ok := granted[want]; !ok {
				missing = append(missing, want)
			}
		}
		if len(missing) > 0 {
			logger.Warnw("token missing required scopes", "missing", missing)
			return false
		}
	}

	return true
}
