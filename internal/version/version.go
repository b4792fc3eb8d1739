// Package version holds build metadata reported by /version and the CLI.
// Values are overridden at build time, e.g.
//
//	go build -ldflags "-X github.com/iomzzz/Standards-final/internal/version.Version=1.2.0"
package version

var (
	// Version is the release version.
	Version = "0.1.0-dev"
	// GitCommit is the source commit hash.
	GitCommit = "unknown"
	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)
