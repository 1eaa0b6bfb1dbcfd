// The authorizer Lambda validates bearer tokens for API Gateway by asking
// the identity provider's introspection endpoint and returns an IAM policy
// decision the gateway can cache.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/vitalsync/fhir-gateway/internal/authorizer"
	"github.com/vitalsync/fhir-gateway/internal/idp"
	"github.com/vitalsync/fhir-gateway/internal/introspect"
	"github.com/vitalsync/fhir-gateway/internal/logger"
	"github.com/vitalsync/fhir-gateway/internal/secrets"
)

func main() {
	logger.Initialize()

	provider, err := secrets.NewSecretsManager(context.Background())
	if err != nil {
		logger.Errorf("failed to initialize secret store client: %v", err)
		os.Exit(1)
	}

	auth := authorizer.New(
		idp.NewResolver(provider, os.Getenv("IDP_SECRET_ARN")),
		introspect.NewClient(introspect.WithFallbackDomain(os.Getenv("IDP_DOMAIN"))),
	)

	lambda.Start(func(ctx context.Context, req authorizer.Request) (events.APIGatewayCustomAuthorizerResponse, error) {
		return auth.Authorize(ctx, req), nil
	})
}
