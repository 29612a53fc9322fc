package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.22.0",
		Path:      "github.com/carbocation/nanoqc/cmd/nanoplotsummary",
		Main:      debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	ci := FromBuildInfo(bi)
	if ci.Commit != "abc123" || ci.CommitTime != "2024-01-02T03:04:05Z" || !ci.Modified {
		t.Errorf("Unexpected compile info %+v", ci)
	}

	s := ci.String()
	for _, want := range []string{"abc123", "go1.22.0", "modified"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q does not mention %q", s, want)
		}
	}
}

func TestFromNilBuildInfo(t *testing.T) {
	ci := FromBuildInfo(nil)
	if !strings.Contains(ci.String(), "no build information") {
		t.Error(ci.String())
	}
}
