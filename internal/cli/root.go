package cli

import "github.com/matzehuels/roomgrow/pkg/buildinfo"

// SetVersion sets the version information displayed by --version. It is an
// alternative to ldflags for callers embedding the CLI.
//
// Parameters:
//   - v: semantic version string (e.g., "v1.2.3")
//   - c: git commit SHA (short or long form)
//   - d: build timestamp (e.g., "2026-10-17T14:32:01Z")
func SetVersion(v, c, d string) {
	buildinfo.Version = v
	buildinfo.Commit = c
	buildinfo.Date = d
}
