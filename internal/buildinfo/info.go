// Package buildinfo holds version metadata stamped in with
// -ldflags "-X github.com/cleared-dev/networth/internal/buildinfo.Version=...".
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
