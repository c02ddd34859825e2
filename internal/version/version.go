// Package version provides build version information for templechat.
// The values can be overridden at compile time via -ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the semantic version of the application.
	Version = "1.0.0"

	// GitCommit is the git commit hash when the binary was built.
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built.
	BuildDate = "unknown"
)

// Info represents the full version information for display.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a one-line human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("templechat v%s (%s, built %s, %s, %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// Validate checks that the compiled-in version is valid semver. Run by
// the version command so a bad -ldflags override fails loudly.
func Validate() error {
	if _, err := semver.NewVersion(Version); err != nil {
		return fmt.Errorf("invalid version %q: %w", Version, err)
	}
	return nil
}

// AtLeast reports whether the current version is at or above the given
// minimum. Invalid inputs report false.
func AtLeast(minimum string) bool {
	current, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	floor, err := semver.NewVersion(minimum)
	if err != nil {
		return false
	}
	return !current.LessThan(floor)
}
