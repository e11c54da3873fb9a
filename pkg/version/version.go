package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a human-friendly version string for CLI output.
// Release builds are normalised to "vMAJOR.MINOR.PATCH"; anything that is
// not a semantic version is printed as given.
func Summary() string {
	return normalize(Version)
}

func normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "dev"
	}
	v, err := semver.NewVersion(trimmed)
	if err != nil {
		return trimmed
	}
	return "v" + v.String()
}
