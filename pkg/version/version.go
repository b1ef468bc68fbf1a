// Package version reports which tms build is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the binary name reported by Info.
const Name = "tms"

// Set with -ldflags "-X github.com/rzbill/tms/pkg/version.Version=...".
var (
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// BuildInfo describes the running binary.
type BuildInfo struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information. Binaries built without ldflags, such
// as those from `go install`, fall back to the module version and VCS
// stamp recorded by the Go toolchain.
func Get() BuildInfo {
	info := BuildInfo{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// ShortCommit returns the first eight characters of the commit.
func (b BuildInfo) ShortCommit() string {
	if len(b.Commit) > 8 {
		return b.Commit[:8]
	}
	return b.Commit
}

// String renders the one-line form printed by `tms version`.
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (%s) built %s with %s for %s",
		b.Name, b.Version, b.ShortCommit(), b.BuildTime, b.GoVersion, b.Platform)
}

// Info returns the build information as a single line.
func Info() string {
	return Get().String()
}
