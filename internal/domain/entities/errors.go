package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by resolvers and adapters
var (
	// ErrMalformedSelector marks an override key that is not group--artifact--versionRange
	ErrMalformedSelector = errors.New("malformed override selector")
	// ErrDuplicateAlias marks a merge specification that lists one alias twice
	ErrDuplicateAlias = errors.New("duplicate merge alias")
	// ErrMalformedMerge marks a merge line without a main license
	ErrMalformedMerge = errors.New("malformed merge line")
	// ErrMalformedMapping marks a persisted file that cannot be decoded
	ErrMalformedMapping = errors.New("malformed mapping file")
)

// DuplicateAliasError reports the alias that was listed more than once in the merge specification
type DuplicateAliasError struct {
	Alias string
	Main  string
	// Previous is the main license the alias was first registered for
	Previous string
}

func (e *DuplicateAliasError) Error() string {
	if e.Previous == e.Main {
		return fmt.Sprintf("license %q is listed twice in the merge entry for %q", e.Alias, e.Main)
	}
	return fmt.Sprintf("license %q is merged into %q but was already merged into %q; use a single merge entry per license",
		e.Alias, e.Main, e.Previous)
}

// Unwrap lets errors.Is match ErrDuplicateAlias
func (e *DuplicateAliasError) Unwrap() error {
	return ErrDuplicateAlias
}
