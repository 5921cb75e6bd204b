// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// LicenseAssigner records declared or resolved licenses of an artifact into a license map
type LicenseAssigner interface {
	Assign(licenseMap *entities.LicenseMap, artifact entities.ArtifactCoordinate, declared []entities.LicenseEntry)
	AssignNames(licenseMap *entities.LicenseMap, artifact entities.ArtifactCoordinate, names ...string)
}

// OverrideResolver replaces the licenses of artifacts matched by override selectors
type OverrideResolver interface {
	Match(cache *entities.ArtifactCache, selector entities.Selector) ([]entities.ArtifactCoordinate, error)
	Override(licenseMap *entities.LicenseMap, cache *entities.ArtifactCache, overrides entities.OverrideSet) entities.OverrideOutcome
}

// UnsafeMappingResolver reconciles the Unknown set with the persisted missing-license file
type UnsafeMappingResolver interface {
	Reconcile(licenseMap *entities.LicenseMap, cache *entities.ArtifactCache, mapping *entities.UnsafeMapping) entities.UnsafeOutcome
	ApplyDescriptor(licenseMap *entities.LicenseMap, mapping, descriptor *entities.UnsafeMapping) []string
}

// LicenseMerger folds alias licenses into a main license
type LicenseMerger interface {
	Validate(specs []entities.MergeSpec) error
	Merge(licenseMap *entities.LicenseMap, specs []entities.MergeSpec) (entities.MergeOutcome, error)
}

// LookupService asks remote backends for the licenses of Unknown artifacts
type LookupService interface {
	Resolve(ctx context.Context, licenseMap *entities.LicenseMap) (entities.LookupOutcome, error)
}
