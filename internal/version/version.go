package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
	Version   = "dev"
)

// String returns the version string
func String() string {
	commit, built := Commit, BuildTime
	if commit == "unknown" {
		commit, built = fromBuildInfo(built)
	}
	return fmt.Sprintf("kanban %s (commit: %s, built: %s)", Version, short(commit), built)
}

// fromBuildInfo reads the VCS stamp `go build` embeds when ldflags were not set.
func fromBuildInfo(built string) (string, string) {
	commit := "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, built
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	return commit, built
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
