package entities

import (
	"fmt"
	"regexp"
	"strings"
)

var mergeSeparator = regexp.MustCompile(`\s*\|\s*`)

// MergeSpec folds every alias license into Main
type MergeSpec struct {
	Main    string
	Aliases []string
}

// ParseMergeLine reads one "main|alias1|alias2" line.
// It returns false for blank lines and # comments, and ErrMalformedMerge when the main license is empty.
func ParseMergeLine(line string) (MergeSpec, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return MergeSpec{}, false, nil
	}
	tokens := mergeSeparator.Split(line, -1)
	if tokens[0] == "" {
		return MergeSpec{}, false, fmt.Errorf("%w: %q has no main license", ErrMalformedMerge, line)
	}
	spec := MergeSpec{Main: tokens[0]}
	for _, t := range tokens[1:] {
		if t != "" {
			spec.Aliases = append(spec.Aliases, t)
		}
	}
	return spec, true, nil
}

// ParseMergeLines parses every non-blank line, keeping source order.
// The first malformed line fails the whole set.
func ParseMergeLines(lines []string) ([]MergeSpec, error) {
	var specs []MergeSpec
	for i, line := range lines {
		spec, ok, err := ParseMergeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}
