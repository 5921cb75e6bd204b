package entities

import (
	"fmt"
	"strings"
)

// Selector picks artifacts by exact group and artifact id and by version range
type Selector struct {
	Group        string
	Artifact     string
	VersionRange string
}

// ParseSelector splits an override key of the form group--artifact--versionRange
func ParseSelector(id string) (Selector, error) {
	parts := strings.Split(id, KeySeparator)
	if len(parts) != 3 {
		return Selector{}, fmt.Errorf("%w: %q has %d parts, expected group%sartifact%sversion",
			ErrMalformedSelector, id, len(parts), KeySeparator, KeySeparator)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return Selector{}, fmt.Errorf("%w: %q has an empty part", ErrMalformedSelector, id)
		}
	}
	return Selector{Group: parts[0], Artifact: parts[1], VersionRange: parts[2]}, nil
}

func (s Selector) String() string {
	return s.Group + KeySeparator + s.Artifact + KeySeparator + s.VersionRange
}

// OverrideRecord replaces the licenses of every artifact matched by Selector
type OverrideRecord struct {
	Selector Selector
	Licenses []string
}

// RejectedEntry is a persisted entry that could not be turned into a typed record
type RejectedEntry struct {
	Key    string
	Reason string
}

// OverrideSet is the decoded content of one or more override files.
// Records keep the ascending key order of the source; later records win on overlap.
type OverrideSet struct {
	Records  []OverrideRecord
	Rejected []RejectedEntry
}

// Append concatenates another set after this one
func (s *OverrideSet) Append(other OverrideSet) {
	s.Records = append(s.Records, other.Records...)
	s.Rejected = append(s.Rejected, other.Rejected...)
}
