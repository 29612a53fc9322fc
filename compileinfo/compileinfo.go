// Package compileinfo reports which commit a binary was built from, so that a
// summary CSV can be traced back to the code that produced it.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
)

type CompileInfo struct {
	Binary     string
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return fmt.Sprintf("%s: no build information available.", c.Binary)
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	commit := "unknown"
	if c.Commit != "" {
		commit = c.Commit
		if c.CommitTime != "" {
			commit += " (" + c.CommitTime + ")"
		}
	}

	return fmt.Sprintf("%s: %s %s built with %s at commit %s.%s", c.Binary, c.Package, c.Version, c.GoVersion, commit, mod)
}

// FromBuildInfo extracts the VCS stamp from bi.
func FromBuildInfo(bi *debug.BuildInfo) CompileInfo {
	out := CompileInfo{Binary: filepath.Base(os.Args[0])}
	if bi == nil {
		return out
	}

	out.GoVersion = bi.GoVersion
	out.Package = bi.Path
	out.Version = bi.Main.Version
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Get() CompileInfo {
	bi, _ := debug.ReadBuildInfo()
	return FromBuildInfo(bi)
}

func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
