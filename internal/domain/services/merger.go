package services

import (
	"fmt"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/services"
)

// licenseMerger implements LicenseMerger
type licenseMerger struct {
	logger interfaces.Logger
}

// NewLicenseMerger creates the service that folds license aliases
func NewLicenseMerger(logger interfaces.Logger) services.LicenseMerger {
	return &licenseMerger{logger: orNoOp(logger)}
}

type mergeGroup struct {
	main    string
	aliases []string
}

// group accumulates lines sharing a main license, keeping first-seen order.
// An alias listed twice anywhere is a *entities.DuplicateAliasError and an
// empty main license is entities.ErrMalformedMerge.
func group(specs []entities.MergeSpec) ([]mergeGroup, error) {
	var groups []mergeGroup
	index := make(map[string]int)
	seen := make(map[string]string)

	for _, spec := range specs {
		if spec.Main == "" {
			return nil, fmt.Errorf("%w: aliases %v have no main license", entities.ErrMalformedMerge, spec.Aliases)
		}
		i, ok := index[spec.Main]
		if !ok {
			i = len(groups)
			index[spec.Main] = i
			groups = append(groups, mergeGroup{main: spec.Main})
		}
		for _, alias := range spec.Aliases {
			if previous, dup := seen[alias]; dup {
				return nil, &entities.DuplicateAliasError{Alias: alias, Main: spec.Main, Previous: previous}
			}
			seen[alias] = spec.Main
			groups[i].aliases = append(groups[i].aliases, alias)
		}
	}
	return groups, nil
}

// Validate checks the merge lines without touching any map
func (m *licenseMerger) Validate(specs []entities.MergeSpec) error {
	if _, err := group(specs); err != nil {
		return fmt.Errorf("invalid license merges: %w", err)
	}
	return nil
}

// Merge folds each alias set into its main license. The whole specification is
// validated first so an invalid one leaves licenseMap untouched. Aliases absent
// from the map are skipped with a warning and the main license is only written
// when it ends up with at least one artifact.
func (m *licenseMerger) Merge(licenseMap *entities.LicenseMap, specs []entities.MergeSpec) (entities.MergeOutcome, error) {
	var outcome entities.MergeOutcome

	groups, err := group(specs)
	if err != nil {
		return outcome, fmt.Errorf("invalid license merges: %w", err)
	}

	for _, g := range groups {
		if len(g.aliases) == 0 {
			continue
		}
		union := licenseMap.Get(g.main)
		for _, alias := range g.aliases {
			if !licenseMap.Has(alias) {
				m.logger.Warn("License to merge is not used by any dependency",
					interfaces.F("alias", alias),
					interfaces.F("main", g.main))
				outcome.Missing = append(outcome.Missing, alias)
				continue
			}
			union = append(union, licenseMap.Get(alias)...)
			licenseMap.Remove(alias)
			outcome.Folded = append(outcome.Folded, alias)
		}
		if len(union) == 0 {
			m.logger.Debug("Merged license has no dependencies", interfaces.F("main", g.main))
			continue
		}
		licenseMap.PutAll(g.main, union)
	}
	return outcome, nil
}
