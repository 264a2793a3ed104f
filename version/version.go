package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Set via -ldflags at release time; build info fills the gaps for
	// source builds.
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Full returns the version string shown by --version, with the short commit
// and build date when they are known.
func Full() string {
	v, commit, date := resolve()
	if len(commit) > 7 {
		if date != "unknown" {
			return fmt.Sprintf("%s (%s, built %s)", v, commit[:7], date)
		}
		return fmt.Sprintf("%s (%s)", v, commit[:7])
	}
	return v
}

// resolve prefers the compile-time values and falls back to Go's runtime
// build info, so plain `go build` binaries still report something useful.
func resolve() (version, commit, date string) {
	version, commit, date = Version, Commit, Date
	info, ok := debug.ReadBuildInfo()
	if !ok {
		if version == "dev" || version == "" {
			version = "development"
		}
		return version, commit, date
	}
	if version == "dev" || version == "" {
		version = "development"
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "unknown" || commit == "" {
				commit = setting.Value
			}
		case "vcs.time":
			if date == "unknown" || date == "" {
				date = setting.Value
			}
		}
	}
	return version, commit, date
}
