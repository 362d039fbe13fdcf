// Package build exposes version metadata stamped in at link time.
package build

import "fmt"

// These variables are set at build time via -ldflags, for example
//
//	-X github.com/shaharia-lab/venuebook/internal/build.Version=v1.2.0
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// Info is the JSON shape served by the version endpoint.
type Info struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commit_sha"`
	BuildDate string `json:"build_date"`
}

// Current returns the stamped build metadata.
func Current() Info {
	return Info{Version: Version, CommitSHA: CommitSHA, BuildDate: BuildDate}
}

// String returns a single human-readable build info string.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}
