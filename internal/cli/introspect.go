package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalsync/fhir-gateway/internal/introspect"
)

func cmdIntrospect() *cobra.Command {
	var tok string

	c := &cobra.Command{
		Use:   "introspect",
		Short: "Call the identity provider's introspection endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			pc := cfg.providerConfig()
			if !pc.Complete() {
				return fmt.Errorf("client_id and client_secret must be set in %s or FHIRGW_* env", cfgPath)
			}

			client := introspect.NewClient(introspect.WithFallbackDomain(cfg.Domain))
			res, err := client.Introspect(cmd.Context(), tok, pc)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}

	c.Flags().StringVar(&tok, "token", "", "access token to introspect")
	_ = c.MarkFlagRequired("token")
	return c
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(b))
	return nil
}
