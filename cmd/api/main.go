// The api Lambda serves the registration API behind the authorizer: health,
// an auth-context echo endpoint, and the member-registration workflow
// trigger.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/vitalsync/fhir-gateway/internal/api"
	"github.com/vitalsync/fhir-gateway/internal/handlers"
	"github.com/vitalsync/fhir-gateway/internal/logger"
	"github.com/vitalsync/fhir-gateway/internal/secrets"
	"github.com/vitalsync/fhir-gateway/internal/workflow"
)

func main() {
	logger.Initialize()
	ctx := context.Background()

	provider, err := secrets.NewSecretsManager(ctx)
	if err != nil {
		logger.Errorf("failed to initialize secret store client: %v", err)
		os.Exit(1)
	}

	starter, err := workflow.NewStepFunctions(ctx, os.Getenv("STATE_MACHINE_ARN"))
	if err != nil {
		logger.Errorf("failed to initialize workflow client: %v", err)
		os.Exit(1)
	}

	router := api.NewRouter(&handlers.Handlers{
		Secrets:     provider,
		SecretID:    os.Getenv("SECRET_ARN"),
		Workflow:    starter,
		Environment: environment(),
	})

	lambda.Start(router.Handle)
}

func environment() string {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		return v
	}
	return "dev"
}
