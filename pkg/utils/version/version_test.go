package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func Test_fillFromBuildInfo(t *testing.T) {
	info := Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown", Modified: "false"}
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	fillFromBuildInfo(&info, bi)
	if info.Version != "v1.2.3" || info.GitCommit != "abc123" || info.Modified != "true" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.BuildDate != "2025-01-02T03:04:05Z" {
		t.Errorf("BuildDate = %q", info.BuildDate)
	}
}

func Test_fillFromBuildInfo_KeepsInjected(t *testing.T) {
	info := Info{Version: "0.3.0", GitCommit: "deadbeef", BuildDate: "2024-12-01T00:00:00Z"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}},
	})
	if info.Version != "0.3.0" || info.GitCommit != "deadbeef" {
		t.Errorf("injected values overwritten: %+v", info)
	}
}

func Test_GetVersionString(t *testing.T) {
	if s := GetVersionString(); !strings.HasPrefix(s, "codescope has version ") {
		t.Errorf("GetVersionString() = %q", s)
	}
	if s := GetShortVersionString(); !strings.Contains(s, "github.com/yeisme/codescope/releases") {
		t.Errorf("GetShortVersionString() = %q", s)
	}
}
