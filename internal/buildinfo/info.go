// Package buildinfo carries version metadata stamped in with -ldflags.
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

// String formats the version line shown by `watspent --version`.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
