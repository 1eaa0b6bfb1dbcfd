// Package workflow triggers the asynchronous registration workflow.
package workflow

import (
	"context"
)

// Execution describes a started workflow execution.
type Execution struct {
	ExecutionArn string `json:"executionArn"`
	StartDate    string `json:"startDate"`
}

// Starter is the workflow-engine dependency of the API handlers. Start makes
// exactly one attempt; retry and queueing policy live with the caller's
// infrastructure, not here.
type Starter interface {
	// Configured reports whether a state machine is wired up; when false,
	// handlers report the trigger as skipped instead of failing.
	Configured() bool
	Start(ctx context.Context, input any) (*Execution, error)
}
