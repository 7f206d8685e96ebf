// Package version exposes the build version of the esmatch binary.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// version is overridden at build time:
//
//	go build -ldflags "-X github.com/rshade/esmatch/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Set through -ldflags.
var version = "0.1.0-dev"

// fallbackVersion is reported when the linked value is not valid semver.
const fallbackVersion = "0.0.0-unknown"

// GetVersion returns the normalized semantic version without a leading "v".
func GetVersion() string {
	v, err := Parse(version)
	if err != nil {
		return fallbackVersion
	}
	return v.String()
}

// Parse parses a version string, tolerating surrounding whitespace and a "v" prefix.
func Parse(raw string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimSpace(raw))
}

// IsPrerelease reports whether the running build is a prerelease (e.g. "-dev", "-rc.1").
func IsPrerelease() bool {
	v, err := Parse(version)
	if err != nil {
		return true
	}
	return v.Prerelease() != ""
}
