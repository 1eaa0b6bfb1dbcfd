// The local dev server exposes the two Lambda handlers over plain HTTP so
// the API and the authorizer can be exercised without an AWS deployment.
package main

import (
	"os"

	"github.com/vitalsync/fhir-gateway/internal/logger"
)

func main() {
	logger.Initialize()
	if err := run(); err != nil {
		logger.Errorf("local server exited: %v", err)
		os.Exit(1)
	}
}
