// Package versionrange compares Maven-style versions and matches them against range expressions
package versionrange

import (
	"strings"

	mvnversion "github.com/masahiro331/go-mvn-version"
)

// Version is a parsed version string ordered like Maven's ComparableVersion
type Version struct {
	raw    string
	parsed mvnversion.Version
}

// ParseVersion never fails: any string is a version
func ParseVersion(raw string) Version {
	// NewVersion only tokenizes and always returns a nil error
	parsed, _ := mvnversion.NewVersion(strings.TrimSpace(raw))
	return Version{raw: raw, parsed: parsed}
}

func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1 when v is older than, equal to or newer than o
func (v Version) Compare(o Version) int {
	return v.parsed.Compare(o.parsed)
}

// Compare parses and compares two version strings
func Compare(a, b string) int {
	return ParseVersion(a).Compare(ParseVersion(b))
}
