// Package buildinfo reports the version stamped into the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X dazzle/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Resolve fills Commit and Date from the VCS stamp the go tool embeds when
// they were not set through -ldflags.
func Resolve() (commit, date string) {
	commit, date = Commit, Date
	bi, ok := readBuildInfo()
	if !ok {
		return commit, date
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && s.Value != "" {
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			}
		case "vcs.time":
			if date == "unknown" && s.Value != "" {
				date = s.Value
			}
		}
	}
	return commit, date
}

// Short returns a compact build identifier for window titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if commit, _ := Resolve(); commit != "" && commit != "unknown" {
		return commit
	}
	return "dev"
}

// String is the one-line banner printed by -version.
func String() string {
	commit, date := Resolve()
	return fmt.Sprintf("dazzle %s (commit %s, built %s)", Version, commit, date)
}
