// Package version carries build metadata injected by the linker.
//
//	go build -ldflags "-X github.com/rickgao/cursorlog/internal/version.Version=0.3.0 \
//	                   -X github.com/rickgao/cursorlog/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rickgao/cursorlog/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	         ./cmd/collector
package version

import "runtime"

// Set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is the build metadata reported by the health endpoint and the version command.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String returns a one-line description, e.g. "0.3.0 (a1b2c3d) built 2026-01-02T15:04:05Z go1.24.7".
func String() string {
	i := Get()
	return i.Version + " (" + i.Commit + ") built " + i.BuildTime + " " + i.GoVersion
}
