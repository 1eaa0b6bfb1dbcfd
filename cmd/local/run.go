package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitalsync/fhir-gateway/internal/api"
	"github.com/vitalsync/fhir-gateway/internal/authorizer"
	"github.com/vitalsync/fhir-gateway/internal/handlers"
	"github.com/vitalsync/fhir-gateway/internal/idp"
	"github.com/vitalsync/fhir-gateway/internal/introspect"
	"github.com/vitalsync/fhir-gateway/internal/logger"
	"github.com/vitalsync/fhir-gateway/internal/mw"
	"github.com/vitalsync/fhir-gateway/internal/secrets"
	"github.com/vitalsync/fhir-gateway/internal/workflow"
)

func run() error {
	ctx := context.Background()

	provider, err := secrets.NewSecretsManager(ctx)
	if err != nil {
		return err
	}

	starter, err := workflow.NewStepFunctions(ctx, os.Getenv("STATE_MACHINE_ARN"))
	if err != nil {
		return err
	}

	auth := authorizer.New(
		idp.NewResolver(provider, os.Getenv("IDP_SECRET_ARN")),
		introspect.NewClient(introspect.WithFallbackDomain(os.Getenv("IDP_DOMAIN"))),
	)

	router := api.NewRouter(&handlers.Handlers{
		Secrets:     provider,
		SecretID:    os.Getenv("SECRET_ARN"),
		Workflow:    starter,
		Environment: "local",
	})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(mw.Trace())
	r.Use(mw.Logger(mw.LogOpts{SkipPaths: []string{"/healthz"}}))

	registerRoutes(r, auth, router)

	addr := listenAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Infof("local dev server listening on %s", addr)
	return srv.ListenAndServe()
}

func listenAddr() string {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		return v
	}
	return ":8085"
}
