// Package buildinfo carries version metadata stamped at build time.
package buildinfo

import "fmt"

var (
	// Version will be set via ldflags during build.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)

// Summary returns a one-line version string for the version command.
func Summary() string {
	return fmt.Sprintf("propbooks %s (commit %s, built %s)", Version, Commit, Date)
}
