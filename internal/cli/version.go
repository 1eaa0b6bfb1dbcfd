package cli

import (
	"github.com/spf13/cobra"

	"github.com/vitalsync/fhir-gateway/internal/version"
)

func cmdVersion() *cobra.Command {
	var verbose bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			if verbose {
				cmd.Println(version.Verbose())
			} else {
				cmd.Println(version.String())
			}
		},
	}

	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed version information")
	return c
}
