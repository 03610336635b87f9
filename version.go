package mp4meta

import "runtime"

// Version is the semantic version of the mp4meta library.
const Version = "0.1.0"

// Build metadata, populated via -ldflags:
//
//	go build -ldflags "\
//	  -X github.com/simonhull/mp4meta.buildCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/simonhull/mp4meta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	buildCommit = ""
	buildTime   = ""
)

// VersionInfo describes the library build.
type VersionInfo struct {
	Version   string
	Commit    string // git commit, empty when not set at build time
	BuildTime string // build timestamp, empty when not set at build time
	GoVersion string
}

// GetVersionInfo reports the library version and build metadata.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		Commit:    buildCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// String formats the version for diagnostics, e.g.
// "mp4meta 0.1.0 (abc1234, go1.25)".
func (v VersionInfo) String() string {
	s := "mp4meta " + v.Version
	if v.Commit != "" {
		s += " (" + v.Commit + ", " + v.GoVersion + ")"
	} else {
		s += " (" + v.GoVersion + ")"
	}
	return s
}
