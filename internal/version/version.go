// Package version exposes build information injected via ldflags.
package version

import "fmt"

var (
	// Version is the semantic version (injected via ldflags at build time)
	Version = "dev"

	// GitCommit is the git commit hash (injected via ldflags)
	GitCommit = "none"

	// BuildDate is the build timestamp (injected via ldflags)
	BuildDate = "unknown"
)

// Info is the structured version payload served by the local dev server.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
}

// Get returns the version information as a struct.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("fhir-gateway %s", Version)
}

// Verbose returns a detailed version string.
func Verbose() string {
	return fmt.Sprintf("fhir-gateway %s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
