// Package version records build metadata injected at link time via
// -ldflags.
package version

var (
	// Version is the release version of the binary.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
