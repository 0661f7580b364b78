// Package buildinfo identifies the yamlnode build. Both variables are set
// at link time:
//
//	go build -ldflags "-X github.com/lc/yamlnode/internal/buildinfo.Version=v0.2.0"
package buildinfo

// Version is the release tag.
var Version = "v0.1.0"

// Commit is the source revision. It stays "unknown" for go run and tests.
var Commit = "unknown"

// String returns the version and commit as one line.
func String() string {
	return Version + " (" + Commit + ")"
}
