// Package bininfo carries build metadata injected with -ldflags "-X".
package bininfo

var (
	// Version is the SemVer version of the binary, optionally followed by "+<commit>".
	Version = "v0.0.0"

	// BuildTime is the RFC 3339 time the binary was built at.
	BuildTime = "1970-01-01T00:00:00Z"
)
