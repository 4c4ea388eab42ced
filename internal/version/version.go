// Package version holds build metadata injected at link time.
package version

import "fmt"

// Version is set via ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/docnav/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("docnav %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
