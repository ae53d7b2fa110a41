// Package version exposes build metadata for the blockpress binary, set at
// build time via -ldflags or recovered from the embedded build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time:
//
//	-ldflags "-X .../internal/version.Version=v1.2.3 ..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// BuildInfo contains version and build information.
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
}

// GetBuildInfo returns the full build information.
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   GetVersion(),
		GitCommit: GetGitCommit(),
		BuildTime: parseBuildTime(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetVersion returns the application version. Binaries installed with
// go install carry no ldflags, so the module build info is consulted before
// giving up.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	if rev := vcsRevision(info); len(rev) >= 7 {
		return "dev-" + rev[:7]
	}
	return "dev"
}

// GetGitCommit returns the git commit hash.
func GetGitCommit() string {
	if GitCommit != "" && GitCommit != "unknown" {
		return GitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if rev := vcsRevision(info); rev != "" {
			return rev
		}
	}
	return "unknown"
}

// GetShortVersion returns a short version string suitable for display.
func GetShortVersion() string {
	version := GetVersion()
	commit := GetGitCommit()
	if commit == "unknown" || len(commit) < 7 {
		return version
	}
	if version == "dev" {
		return "dev-" + commit[:7]
	}
	return fmt.Sprintf("%s (%s)", version, commit[:7])
}

// GetDetailedVersion returns a multi-line version string with build info.
func GetDetailedVersion() string {
	info := GetBuildInfo()

	lines := []string{"Version: " + info.Version}
	if info.GitCommit != "unknown" {
		lines = append(lines, "Commit: "+info.GitCommit)
	}
	if !info.BuildTime.IsZero() {
		lines = append(lines, "Built: "+info.BuildTime.Format(time.RFC3339))
	}
	lines = append(lines,
		"Go: "+info.GoVersion,
		"Platform: "+info.Platform,
	)
	return strings.Join(lines, "\n")
}

func vcsRevision(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func parseBuildTime() time.Time {
	if BuildTime == "" || BuildTime == "unknown" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, BuildTime); err == nil {
			return t
		}
	}
	return time.Time{}
}
