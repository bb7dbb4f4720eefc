// Package cmd holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/thoreinstein/confit/cmd.Version=v1.2.0" ./cmd/confit
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// Info renders the build metadata as printed by `confit version`.
func Info() string {
	return fmt.Sprintf("confit version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
