package sicd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// LibraryVersion is the release of this package.
//
// Not to be confused with Version, the metadata schema version of a product.
const LibraryVersion = "0.1.0"

// Build stamps, set with -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/sicd.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/sicd.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/sicd-info
var (
	gitCommit string
	buildTime string
)

// BuildInfo describes the running build and the metadata versions it reads.
type BuildInfo struct {
	Library   string
	GitCommit string // "unknown" when neither ldflags nor VCS stamps are present
	BuildTime string
	GoVersion string
	Readable  []Version // versions whose metadata decodes
	Known     []Version // recognized but not decodable
}

// GetBuildInfo reports the library build. Commit and time fall back to the
// VCS stamps Go embeds in main binaries, then to "unknown".
func GetBuildInfo() BuildInfo {
	var settings []debug.BuildSetting
	if bi, ok := debug.ReadBuildInfo(); ok {
		settings = bi.Settings
	}
	return buildInfo(settings)
}

func buildInfo(settings []debug.BuildSetting) BuildInfo {
	info := BuildInfo{
		Library:   LibraryVersion,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	for _, s := range settings {
		switch {
		case s.Key == "vcs.revision" && info.GitCommit == "":
			info.GitCommit = s.Value
		case s.Key == "vcs.time" && info.BuildTime == "":
			info.BuildTime = s.Value
		}
	}
	if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if info.BuildTime == "" {
		info.BuildTime = "unknown"
	}

	for _, v := range Versions() {
		if v.Implemented() {
			info.Readable = append(info.Readable, v)
		} else {
			info.Known = append(info.Known, v)
		}
	}
	return info
}

// String renders the build info as printed by sicd-info -version.
func (b BuildInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sicd %s (commit %s, built %s, %s)\n", b.Library, shortCommit(b.GitCommit), b.BuildTime, b.GoVersion)
	fmt.Fprintf(&sb, "  reads:      %s\n", joinVersions(b.Readable))
	fmt.Fprintf(&sb, "  recognizes: %s\n", joinVersions(b.Known))
	return sb.String()
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}

func joinVersions(vs []Version) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
