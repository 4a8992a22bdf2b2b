// Package version carries build metadata. The variables are overridden at
// build time with -ldflags "-X github.com/tecu23/info-server/internal/version.Version=...".
package version

var (
	Version = "1.0.0"
	Commit  = "none"
	Date    = ""
)
