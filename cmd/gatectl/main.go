// gatectl is the developer CLI for the gateway's authorization pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/vitalsync/fhir-gateway/internal/cli"
	"github.com/vitalsync/fhir-gateway/internal/logger"
)

func main() {
	logger.Initialize()
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
