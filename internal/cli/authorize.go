package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalsync/fhir-gateway/internal/authorizer"
	"github.com/vitalsync/fhir-gateway/internal/idp"
	"github.com/vitalsync/fhir-gateway/internal/introspect"
)

// staticSecrets serves the CLI config as if it were the deployed secret, so
// the authorize command runs the exact production pipeline.
type staticSecrets struct {
	doc []byte
}

func (s *staticSecrets) GetSecret(_ context.Context, _ string) ([]byte, error) {
	return s.doc, nil
}

func cmdAuthorize() *cobra.Command {
	var tok string
	var methodArn string

	c := &cobra.Command{
		Use:   "authorize",
		Short: "Run the full authorization pipeline locally and print the decision",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			pc := cfg.providerConfig()
			if !pc.Complete() {
				return fmt.Errorf("client_id and client_secret must be set in %s or FHIRGW_* env", cfgPath)
			}

			doc, err := json.Marshal(pc)
			if err != nil {
				return err
			}

			resolver := idp.NewResolver(&staticSecrets{doc: doc}, "local")
			client := introspect.NewClient(introspect.WithFallbackDomain(cfg.Domain))
			auth := authorizer.New(resolver, client)

			decision := auth.Authorize(cmd.Context(), authorizer.Request{
				AuthorizationToken: "Bearer " + tok,
				MethodArn:          methodArn,
			})
			return printJSON(cmd, decision)
		},
	}

	c.Flags().StringVar(&tok, "token", "", "access token to authorize")
	c.Flags().StringVar(&methodArn, "method-arn", "arn:aws:execute-api:local:0:api/dev/GET/test", "method ARN to authorize against")
	_ = c.MarkFlagRequired("token")
	return c
}
