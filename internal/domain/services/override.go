package services

import (
	"fmt"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/services"
	"github.com/ochairo/thirdparty/internal/domain/versionrange"
)

// overrideResolver implements OverrideResolver
type overrideResolver struct {
	assigner services.LicenseAssigner
	logger   interfaces.Logger
}

// NewOverrideResolver creates the service that applies license overrides
func NewOverrideResolver(assigner services.LicenseAssigner, logger interfaces.Logger) services.OverrideResolver {
	return &overrideResolver{assigner: assigner, logger: orNoOp(logger)}
}

// Match returns the cached artifacts with the selector's exact group and artifact id
// whose version lies in the selector's range. A bare version matches exactly.
func (r *overrideResolver) Match(cache *entities.ArtifactCache, selector entities.Selector) ([]entities.ArtifactCoordinate, error) {
	rng, err := versionrange.Parse(selector.VersionRange)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version range of %s: %w", selector, err)
	}

	var matched []entities.ArtifactCoordinate
	for _, a := range cache.FindByName(selector.Group, selector.Artifact) {
		if rng.Contains(a.Version) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// Override applies the records in order. Every matched artifact loses all its licenses
// and gets the record's licenses; licenses left without artifacts are dropped at the end.
// Applying the same set twice gives the same map.
func (r *overrideResolver) Override(licenseMap *entities.LicenseMap, cache *entities.ArtifactCache, overrides entities.OverrideSet) entities.OverrideOutcome {
	var outcome entities.OverrideOutcome

	for _, rejected := range overrides.Rejected {
		r.logger.Warn("Skipping malformed override entry",
			interfaces.F("key", rejected.Key),
			interfaces.F("reason", rejected.Reason))
		outcome.Rejected = append(outcome.Rejected, rejected)
	}

	for _, record := range overrides.Records {
		selector := record.Selector.String()
		if len(record.Licenses) == 0 {
			r.logger.Warn("Skipping override without licenses", interfaces.F("selector", selector))
			outcome.Empty = append(outcome.Empty, selector)
			continue
		}

		matched, err := r.Match(cache, record.Selector)
		if err != nil {
			r.logger.Warn("Skipping override with invalid version range",
				interfaces.F("selector", selector),
				interfaces.F("error", err.Error()))
			outcome.Rejected = append(outcome.Rejected, entities.RejectedEntry{Key: selector, Reason: err.Error()})
			continue
		}
		if len(matched) == 0 {
			r.logger.Warn("Override matches no dependency of the project", interfaces.F("selector", selector))
			outcome.Unmatched = append(outcome.Unmatched, selector)
			continue
		}

		for _, artifact := range matched {
			r.logger.Debug("Overriding licenses",
				interfaces.F("artifact", artifact.Key()),
				interfaces.F("licenses", entities.JoinLicenses(record.Licenses)))
			licenseMap.RemoveArtifact(artifact.Key())
			r.assigner.AssignNames(licenseMap, artifact, record.Licenses...)
			outcome.Reassigned = append(outcome.Reassigned, artifact.Key())
		}
	}

	licenseMap.RemoveEmptyLicenses()
	return outcome
}
