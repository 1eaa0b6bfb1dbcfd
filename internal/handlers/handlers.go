// Package handlers implements the API Lambda's endpoints: health, an
// auth-context echo, and the member-registration trigger.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vitalsync/fhir-gateway/internal/httpx"
	"github.com/vitalsync/fhir-gateway/internal/logger"
	"github.com/vitalsync/fhir-gateway/internal/secrets"
	"github.com/vitalsync/fhir-gateway/internal/workflow"
)

// Handlers bundles the API endpoints with their external collaborators.
type Handlers struct {
	Secrets     secrets.Provider
	SecretID    string
	Workflow    workflow.Starter
	Environment string
}

// Health reports service status plus the reachability of the secret store
// and the configuration state of the workflow engine.
func (h *Handlers) Health(ctx context.Context, _ events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	secretsStatus := "not_configured"
	if h.SecretID != "" {
		if _, err := h.Secrets.GetSecret(ctx, h.SecretID); err != nil {
			secretsStatus = "error: " + err.Error()
		} else {
			secretsStatus = "connected"
		}
	}

	workflowStatus := "not_configured"
	if h.Workflow != nil && h.Workflow.Configured() {
		workflowStatus = "configured"
	}

	return httpx.JSON(http.StatusOK, map[string]any{
		"status":      "healthy",
		"environment": h.Environment,
		"services": map[string]string{
			"secrets_manager": secretsStatus,
			"step_functions":  workflowStatus,
		},
	})
}

// Test echoes the authorizer context back to the caller; it exists to verify
// the authorization flow end to end.
func (h *Handlers) Test(_ context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	authCtx := req.RequestContext.Authorizer

	return httpx.JSON(http.StatusOK, map[string]any{
		"message":     "Test endpoint successful",
		"environment": h.Environment,
		"authorized":  true,
		"principalId": authValue(authCtx, "principalId"),
		"clientId":    authValue(authCtx, "clientId"),
	})
}

func authValue(authCtx map[string]interface{}, key string) string {
	if s, ok := authCtx[key].(string); ok && s != "" {
		return s
	}
	return "unknown"
}

// RegistrationRequest is the member-registration payload. MemberID,
// FirstName and LastName are required; everything else is passed through to
// the workflow as-is.
type RegistrationRequest struct {
	MemberID    string         `json:"memberId"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	DateOfBirth string         `json:"dateOfBirth,omitempty"`
	Email       string         `json:"email,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (r *RegistrationRequest) missingFields() []string {
	var missing []string
	if r.MemberID == "" {
		missing = append(missing, "memberId")
	}
	if r.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if r.LastName == "" {
		missing = append(missing, "lastName")
	}
	return missing
}

// RegisterMember validates the payload and starts the asynchronous
// registration workflow. The response reports the execution when one was
// started, or a skipped status when no workflow is configured.
func (h *Handlers) RegisterMember(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var reg RegistrationRequest
	if err := json.Unmarshal([]byte(req.Body), &reg); err != nil {
		return httpx.Error(http.StatusBadRequest, "Bad Request", "Invalid JSON in request body")
	}
	if missing := reg.missingFields(); len(missing) > 0 {
		return httpx.Error(http.StatusBadRequest, "Bad Request",
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	// The configuration secret is loaded here so a registration fails fast
	// when the store is unreachable, before the workflow starts.
	if h.SecretID != "" {
		if _, err := h.Secrets.GetSecret(ctx, h.SecretID); err != nil {
			logger.Errorw("failed to load configuration secret", "err", err)
			return httpx.Error(http.StatusInternalServerError, "Internal Server Error",
				"An error occurred processing the request")
		}
	} else {
		logger.Warnw("configuration secret id not set")
	}

	input := map[string]any{
		"memberId":    reg.MemberID,
		"firstName":   reg.FirstName,
		"lastName":    reg.LastName,
		"dateOfBirth": reg.DateOfBirth,
		"email":       reg.Email,
		"metadata":    reg.Metadata,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.Environment,
	}

	execution := map[string]any{"status": "skipped", "message": "State machine not configured"}
	if h.Workflow != nil && h.Workflow.Configured() {
		exec, err := h.Workflow.Start(ctx, input)
		if err != nil {
			logger.Errorw("failed to start registration workflow", "err", err)
			return httpx.Error(http.StatusInternalServerError, "Internal Server Error",
				"An error occurred processing the request")
		}
		execution = map[string]any{
			"executionArn": exec.ExecutionArn,
			"startDate":    exec.StartDate,
		}
	} else {
		logger.Warnw("workflow state machine not configured, skipping trigger")
	}

	return httpx.JSON(http.StatusOK, map[string]any{
		"message":   "Member registration initiated",
		"memberId":  reg.MemberID,
		"status":    "processing",
		"execution": execution,
	})
}
