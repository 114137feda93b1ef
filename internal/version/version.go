// Package version exposes build metadata injected at link time.
package version

// Build metadata, overridden via -ldflags at release time.
//
//nolint:gochecknoglobals // Set by the linker, read-only afterwards.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// BuildTime is the timestamp of the build.
	BuildTime = "unknown"
)

// Short returns just the semantic version.
func Short() string {
	return Version
}

// Full returns the complete build description.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
