// Package mw holds the HTTP middleware used by the local dev server. The
// Lambda entrypoints do not pass through here; API Gateway provides the
// equivalent access logging in production.
package mw

import (
	"net/http"
	"strings"
	"time"

	"github.com/vitalsync/fhir-gateway/internal/httpx"
	"github.com/vitalsync/fhir-gateway/internal/logger"
	"github.com/vitalsync/fhir-gateway/internal/trace"
)

// LogOpts configures the request logger.
type LogOpts struct {
	// SkipPaths are logged at debug level only (health probes and the like).
	SkipPaths []string
}

// Logger logs one summary line per request, with header detail on errors.
// Authorization and api-key headers are always redacted.
func Logger(opts LogOpts) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := httpx.NewRecorder(w)
			next.ServeHTTP(rec, r)

			logger.Infow("req",
				"trace", trace.From(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.Status,
				"ms", time.Since(start).Milliseconds(),
				"bytes", rec.Bytes,
			)

			if rec.Status >= 400 {
				logger.Errorw("req_detail",
					"trace", trace.From(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.Status,
					"headers", redactedHeaders(r.Header),
				)
			}
		})
	}
}

func redactedHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if len(vv) == 0 {
			continue
		}
		v := vv[0]
		lk := strings.ToLower(k)
		if lk == "authorization" || strings.HasPrefix(lk, "x-api-key") {
			v = "***redacted***"
		}
		out[k] = v
	}
	return out
}
