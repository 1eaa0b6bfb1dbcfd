package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/google/uuid"

	"github.com/vitalsync/fhir-gateway/internal/logger"
)

// SFNAPI is the slice of the Step Functions client used here, declared as an
// interface so tests can inject a fake.
type SFNAPI interface {
	StartExecution(
		ctx context.Context,
		params *sfn.StartExecutionInput,
		optFns ...func(*sfn.Options),
	) (*sfn.StartExecutionOutput, error)
}

// StepFunctions starts executions of a single configured state machine.
type StepFunctions struct {
	client          SFNAPI
	stateMachineArn string
}

// NewStepFunctions creates a StepFunctions starter using the default AWS
// credential chain. An empty stateMachineArn is allowed; Configured reports it.
func NewStepFunctions(ctx context.Context, stateMachineArn string) (*StepFunctions, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &StepFunctions{client: sfn.NewFromConfig(cfg), stateMachineArn: stateMachineArn}, nil
}

// NewStepFunctionsWithClient creates a StepFunctions starter around an
// existing client. Used by tests.
func NewStepFunctionsWithClient(client SFNAPI, stateMachineArn string) *StepFunctions {
	return &StepFunctions{client: client, stateMachineArn: stateMachineArn}
}

// Configured reports whether a state machine ARN is set.
func (s *StepFunctions) Configured() bool {
	return s.stateMachineArn != ""
}

// Start serializes input as JSON and starts one execution with a unique
// generated name.
func (s *StepFunctions) Start(ctx context.Context, input any) (*Execution, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workflow input: %w", err)
	}

	name := "execution-" + uuid.NewString()
	out, err := s.client.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(s.stateMachineArn),
		Name:            aws.String(name),
		Input:           aws.String(string(payload)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start workflow execution: %w", err)
	}

	exec := &Execution{ExecutionArn: aws.ToString(out.ExecutionArn)}
	if out.StartDate != nil {
		exec.StartDate = out.StartDate.UTC().Format(time.RFC3339)
	}

	logger.Infow("started workflow execution", "execution_arn", exec.ExecutionArn)
	return exec, nil
}
