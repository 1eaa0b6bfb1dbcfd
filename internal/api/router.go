// Package api dispatches API Gateway proxy events to the gateway's handlers.
package api

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vitalsync/fhir-gateway/internal/handlers"
	"github.com/vitalsync/fhir-gateway/internal/httpx"
	"github.com/vitalsync/fhir-gateway/internal/logger"
)

// Router routes proxy events by path and method. The dispatch table is flat
// on purpose; with three endpoints a routing framework would be overhead.
type Router struct {
	h *handlers.Handlers
}

// NewRouter creates a Router over h.
func NewRouter(h *handlers.Handlers) *Router {
	return &Router{h: h}
}

// Handle is the Lambda entrypoint. It never returns an error: a panic in a
// handler is recovered into a 500 so API Gateway always gets a response it
// can serialize.
func (rt *Router) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("handler panicked", "panic", r, "path", req.Path)
			resp = httpx.Error(http.StatusInternalServerError, "Internal Server Error",
				"An unexpected error occurred")
			err = nil
		}
	}()

	logger.Infow("processing request", "method", req.HTTPMethod, "path", req.Path)

	switch {
	case matches(req, "/health"):
		return rt.h.Health(ctx, req), nil

	case matches(req, "/test"):
		return rt.h.Test(ctx, req), nil

	case matches(req, "/register/member"):
		if req.HTTPMethod != http.MethodPost {
			return httpx.Error(http.StatusMethodNotAllowed, "Method Not Allowed",
				"Method "+req.HTTPMethod+" not allowed for this endpoint"), nil
		}
		return rt.h.RegisterMember(ctx, req), nil

	default:
		return httpx.Error(http.StatusNotFound, "Not Found",
			"Endpoint "+req.Path+" not found"), nil
	}
}

// matches checks the request path and, as a fallback, the resource template;
// API Gateway populates them differently for proxy and non-proxy integrations.
func matches(req events.APIGatewayProxyRequest, route string) bool {
	return req.Path == route || req.Resource == route
}
