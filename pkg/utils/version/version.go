// Package version 构建信息，可通过 -ldflags 注入，未注入时从模块构建信息中补齐
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

var (
	// Version is the current version of the application
	Version = "dev"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
	// BuildDate is when the binary was built
	BuildDate = "unknown"
	// Modified indicates if the source tree was modified ("true" or "false")
	Modified = "false"
)

// Info contains version information
type Info struct {
	Version   string `json:"version" yaml:"version" toml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit" toml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date" toml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version" toml:"go_version"`
	Platform  string `json:"platform" yaml:"platform" toml:"platform"`
	Modified  string `json:"modified" yaml:"modified" toml:"modified"`
}

// GetVersion returns the version information
func GetVersion() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Modified:  Modified,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

// fillFromBuildInfo 只补齐 ldflags 未注入的字段
func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value
		}
	}
}

// GetVersionString 完整版本串
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("codescope has version %s built with %s from %s (%s, modified: %s) on %s",
		info.Version,
		info.GoVersion,
		info.GitCommit,
		info.Platform,
		info.Modified,
		info.BuildDate,
	)
}

// GetShortVersionString 简短版本串
func GetShortVersionString() string {
	info := GetVersion()
	dateStr := info.BuildDate
	if t, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		dateStr = t.Format("2006-01-02")
	}
	return fmt.Sprintf("codescope version %s (%s)\nhttps://github.com/yeisme/codescope/releases/tag/v%s",
		info.Version,
		dateStr,
		info.Version,
	)
}
