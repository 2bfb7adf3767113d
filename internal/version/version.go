// Package version exposes build metadata stamped at link time.
package version

//nolint:revive // Overwritten via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
