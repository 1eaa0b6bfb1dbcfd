// Package authorizer wires token extraction, configuration resolution,
// introspection and policy evaluation into a single authorization decision.
//
// The pipeline is linear and synchronous: extract token, resolve provider
// config, introspect, evaluate policy, build decision. Every failure mode
// short-circuits to a Deny with a coarse principal tag; Authorize never
// returns an error to the gateway.
package authorizer

import (
	"context"
	"errors"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vitalsync/fhir-gateway/internal/idp"
	"github.com/vitalsync/fhir-gateway/internal/introspect"
	"github.com/vitalsync/fhir-gateway/internal/logger"
	"github.com/vitalsync/fhir-gateway/internal/policy"
	"github.com/vitalsync/fhir-gateway/internal/policydoc"
	"github.com/vitalsync/fhir-gateway/internal/token"
)

// Principal tags used on Deny decisions. They classify why access was denied
// without leaking anything about the token or the configuration.
const (
	PrincipalAnonymous    = "anonymous"
	PrincipalSystem       = "system"
	PrincipalInvalidToken = "invalid_token"
	PrincipalError        = "error"
)

// Request is the authorizer invocation payload. The field set matches what
// API Gateway delivers: the raw Authorization header value, the method ARN of
// the protected resource, and (for REQUEST-type invocations) the header and
// query maps used only for the client hint.
type Request struct {
	AuthorizationToken    string            `json:"authorizationToken"`
	MethodArn             string            `json:"methodArn"`
	Headers               map[string]string `json:"headers,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
}

// Introspector is the outbound introspection dependency of the pipeline.
type Introspector interface {
	Introspect(ctx context.Context, tok string, cfg *idp.ProviderConfig) (*introspect.Result, error)
}

// Authorizer holds the pipeline's collaborators. Construct one per process
// (Lambda cold start) and reuse it across invocations; the resolver inside
// memoizes the provider configuration.
type Authorizer struct {
	resolver     *idp.Resolver
	introspector Introspector
}

// New creates an Authorizer.
func New(resolver *idp.Resolver, introspector Introspector) *Authorizer {
	return &Authorizer{resolver: resolver, introspector: introspector}
}

// Authorize runs the decision pipeline for one request. It always returns a
// well-formed decision; errors from collaborators are logged and folded into
// Deny responses.
func (a *Authorizer) Authorize(ctx context.Context, req Request) events.APIGatewayCustomAuthorizerResponse {
	methodArn := req.MethodArn
	if methodArn == "" {
		methodArn = "*"
	}

	tok, ok := token.Extract(req.AuthorizationToken)
	if !ok {
		logger.Warnw("no valid token in request")
		return deny(PrincipalAnonymous, methodArn, "missing or invalid authorization token")
	}

	clientHint := token.ClientHint(req.Headers, req.QueryStringParameters)
	logger.Debugw("client hint", "client_id", orUnknown(clientHint))

	if a.resolver.SecretID() == "" {
		logger.Errorw("identity provider secret id not configured")
		return deny(PrincipalSystem, methodArn, "authorization service not configured")
	}

	cfg, err := a.resolver.Resolve(ctx)
	if err != nil {
		if errors.Is(err, idp.ErrSecretIDNotSet) {
			return deny(PrincipalSystem, methodArn, "authorization service configuration error")
		}
		logger.Errorw("failed to resolve identity provider configuration", "err", err)
		return deny(PrincipalError, methodArn, "authorization failed due to internal error")
	}
	if !cfg.Complete() {
		logger.Errorw("identity provider configuration missing client credentials")
		return deny(PrincipalSystem, methodArn, "authorization service misconfigured")
	}

	res, err := a.introspector.Introspect(ctx, tok, cfg)
	if err != nil {
		logger.Errorw("token introspection failed", "err", err)
		return deny(PrincipalError, methodArn, "authorization failed due to internal error")
	}

	if !res.Active {
		logger.Warnw("token is not active")
		return deny(PrincipalInvalidToken, methodArn, "token is not active")
	}

	if !policy.Evaluate(res, cfg) {
		return deny(PrincipalInvalidToken, methodArn, "token failed validation")
	}

	principal := res.Principal()
	decisionCtx := map[string]interface{}{
		"principalId": principal,
		"clientId":    clientID(res, clientHint),
		"scope":       res.Scope,
		"tokenType":   tokenType(res),
	}

	logger.Infow("authorization successful", "principal", principal)
	return policydoc.Allow(principal, policydoc.WildcardResource(methodArn), decisionCtx)
}

// deny builds a Deny decision with the opaque reason in context. Deny
// decisions always target the exact method ARN so a cached deny never covers
// more than the call that produced it.
func deny(principal, methodArn, reason string) events.APIGatewayCustomAuthorizerResponse {
	return policydoc.Deny(principal, methodArn, map[string]interface{}{
		"error": reason,
	})
}

func clientID(res *introspect.Result, hint string) string {
	if res.ClientID != "" {
		return res.ClientID
	}
	return orUnknown(hint)
}

func tokenType(res *introspect.Result) string {
	if res.TokenType != "" {
		return res.TokenType
	}
	return "Bearer"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
