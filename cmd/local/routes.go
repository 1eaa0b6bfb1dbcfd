package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/vitalsync/fhir-gateway/internal/api"
	"github.com/vitalsync/fhir-gateway/internal/authorizer"
	"github.com/vitalsync/fhir-gateway/internal/httpx"
	"github.com/vitalsync/fhir-gateway/internal/version"
)

func registerRoutes(r chi.Router, auth *authorizer.Authorizer, router *api.Router) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "x-client-id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(version.Get())
	})

	// The API Lambda's routes, served through the same dispatch code that
	// runs in production.
	r.Get("/health", proxy(router))
	r.Get("/test", proxy(router))
	r.Post("/register/member", proxy(router))

	// Decision debugging: POST an authorizer event, get the policy back.
	r.Post("/authorize", func(w http.ResponseWriter, req *http.Request) {
		var evt authorizer.Request
		if err := json.NewDecoder(req.Body).Decode(&evt); err != nil {
			httpx.Write(w, httpx.Error(http.StatusBadRequest, "Bad Request", "Invalid JSON in request body"))
			return
		}
		decision := auth.Authorize(req.Context(), evt)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(decision)
	})
}

// proxy adapts an inbound HTTP request into the API Gateway proxy event the
// Lambda handler consumes, and writes its response back out.
func proxy(router *api.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			httpx.Write(w, httpx.Error(http.StatusBadRequest, "Bad Request", "unreadable body"))
			return
		}

		headers := make(map[string]string, len(req.Header))
		for k := range req.Header {
			headers[k] = req.Header.Get(k)
		}
		query := make(map[string]string)
		for k := range req.URL.Query() {
			query[k] = req.URL.Query().Get(k)
		}

		resp, _ := router.Handle(req.Context(), events.APIGatewayProxyRequest{
			Path:                  req.URL.Path,
			HTTPMethod:            req.Method,
			Headers:               headers,
			QueryStringParameters: query,
			Body:                  string(body),
		})
		httpx.Write(w, resp)
	}
}
