/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querykit

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release stamps, overridden at link time:
//
//	go build -ldflags "\
//	  -X github.com/suparena/querykit.Version=0.1.1 \
//	  -X github.com/suparena/querykit.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/suparena/querykit.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/querykit
var (
	Version   = "0.1.0"
	GitCommit = ""
	BuildDate = ""
)

// BuildInfo describes the running querykit binary.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
}

// GetBuildInfo returns the link-time stamps. Stamps left empty are filled
// from the VCS settings the go command embeds, or "unknown".
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "":
				info.BuildDate = s.Value
			}
		}
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	return info
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("querykit version %s\nGit commit: %s\nBuild date: %s\nGo version: %s",
		b.Version, b.GitCommit, b.BuildDate, b.GoVersion)
}
