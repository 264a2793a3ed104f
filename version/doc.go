// Package version provides version information and build metadata for appcarve.
//
// Version values come from three sources, in order of preference: variables
// injected at build time via -ldflags, Go's runtime build info
// (debug.ReadBuildInfo), and development fallbacks. This keeps version
// reporting consistent between release binaries and plain `go build` output.
package version
