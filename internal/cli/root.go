// Package cli implements gatectl, the developer CLI for poking at the
// gateway's authorization pipeline without deploying anything.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	issuer  string
)

var rootCmd = &cobra.Command{
	Use:   "gatectl",
	Short: "Developer CLI for the FHIR gateway authorization pipeline",
}

// Execute runs the root command.
func Execute() error { return rootCmd.Execute() }

func init() {
	home, _ := os.UserHomeDir()
	defaultCfg := filepath.Join(home, ".fhir-gateway", "config.yaml")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")
	rootCmd.PersistentFlags().StringVar(&issuer, "issuer", "", "identity provider issuer (overrides config)")

	rootCmd.AddCommand(cmdVersion(), cmdIntrospect(), cmdAuthorize())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
