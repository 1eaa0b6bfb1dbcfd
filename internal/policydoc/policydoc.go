// Package policydoc builds the IAM policy documents that API Gateway
// consumes as authorization decisions.
package policydoc

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const (
	policyVersion = "2012-10-17"
	invokeAction  = "execute-api:Invoke"
)

// EffectAllow and EffectDeny are the two decision effects.
const (
	EffectAllow = "Allow"
	EffectDeny  = "Deny"
)

// New assembles an authorizer response for the given principal, effect and
// resource ARN. The context map is passed through to downstream handlers via
// the request context; API Gateway requires its values to be scalar.
func New(principalID, effect, resource string, ctx map[string]interface{}) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principalID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: policyVersion,
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{invokeAction},
					Effect:   effect,
					Resource: []string{resource},
				},
			},
		},
		Context: ctx,
	}
}

// Allow builds an Allow decision.
func Allow(principalID, resource string, ctx map[string]interface{}) events.APIGatewayCustomAuthorizerResponse {
	return New(principalID, EffectAllow, resource, ctx)
}

// Deny builds a Deny decision.
func Deny(principalID, resource string, ctx map[string]interface{}) events.APIGatewayCustomAuthorizerResponse {
	return New(principalID, EffectDeny, resource, ctx)
}

// WildcardResource broadens a method ARN of the form
//
//	arn:partition:execute-api:region:account:apiId/stage/METHOD/path
//
// into apiId/stage/* so the gateway can cache one Allow decision across all
// methods invoked with the same credential. A methodArn that does not have
// that shape is returned unchanged; denying on the exact resource is always
// safe.
func WildcardResource(methodArn string) string {
	parts := strings.SplitN(methodArn, ":", 6)
	if len(parts) != 6 {
		return methodArn
	}
	pathParts := strings.Split(parts[5], "/")
	if len(pathParts) < 2 {
		return methodArn
	}
	prefix := strings.Join(parts[:5], ":")
	return prefix + ":" + pathParts[0] + "/" + pathParts[1] + "/*"
}
