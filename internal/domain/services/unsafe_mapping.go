package services

import (
	"regexp"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/services"
)

// Older releases keyed the missing file by group--artifact--version--type[--classifier|--scope].
// The five part form is tried first since the four part pattern also matches it.
var legacyKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.+)--(.+)--(.+)--(.+)--(.+)$`),
	regexp.MustCompile(`^(.+)--(.+)--(.+)--(.+)$`),
}

// MigrateKey rewrites a legacy missing-file key to group--artifact--version.
// Current keys are returned unchanged.
func MigrateKey(key string) string {
	for _, p := range legacyKeyPatterns {
		if m := p.FindStringSubmatch(key); m != nil {
			return m[1] + entities.KeySeparator + m[2] + entities.KeySeparator + m[3]
		}
	}
	return key
}

// unsafeMappingResolver implements UnsafeMappingResolver
type unsafeMappingResolver struct {
	assigner services.LicenseAssigner
	logger   interfaces.Logger
}

// NewUnsafeMappingResolver creates the service that reconciles the missing-license file
func NewUnsafeMappingResolver(assigner services.LicenseAssigner, logger interfaces.Logger) services.UnsafeMappingResolver {
	return &unsafeMappingResolver{assigner: assigner, logger: orNoOp(logger)}
}

// Reconcile updates licenseMap and mapping in place.
// Legacy keys are migrated in ascending key order, the later key winning a collision.
// Keys of artifacts outside this run are dropped. Every non-empty value adds its
// licenses to the artifact and takes it out of Unknown. Artifacts still unknown
// afterwards get an empty value so they show up in the saved file.
func (r *unsafeMappingResolver) Reconcile(licenseMap *entities.LicenseMap, cache *entities.ArtifactCache, mapping *entities.UnsafeMapping) entities.UnsafeOutcome {
	var outcome entities.UnsafeOutcome

	for _, key := range mapping.Keys() {
		migrated := MigrateKey(key)
		if !cache.Contains(migrated) {
			r.logger.Debug("Dropping missing-license entry of an artifact outside this project", interfaces.F("key", key))
			mapping.Delete(key)
			outcome.Stale = append(outcome.Stale, key)
			continue
		}
		if migrated != key {
			value, _ := mapping.Get(key)
			mapping.Delete(key)
			mapping.Set(migrated, value)
			r.logger.Info("Migrated missing-license key",
				interfaces.F("from", key),
				interfaces.F("to", migrated))
			outcome.Migrated = append(outcome.Migrated, entities.Migration{From: key, To: migrated})
		}
	}

	for _, key := range mapping.Keys() {
		names := mapping.Licenses(key)
		if len(names) == 0 {
			continue
		}
		artifact, _ := cache.Get(key)
		r.assigner.AssignNames(licenseMap, artifact, names...)
		licenseMap.RemoveFrom(entities.UnknownLicense, key)
		outcome.Resolved = append(outcome.Resolved, key)
	}

	outcome.Residual = r.markResidual(licenseMap, mapping)
	return outcome
}

// ApplyDescriptor resolves Unknown artifacts from a shared license database.
// Only artifacts still in Unknown with a non-empty descriptor value are touched;
// their value is copied into mapping. It returns the resolved keys.
func (r *unsafeMappingResolver) ApplyDescriptor(licenseMap *entities.LicenseMap, mapping, descriptor *entities.UnsafeMapping) []string {
	var resolved []string
	for _, artifact := range licenseMap.Get(entities.UnknownLicense) {
		value, _ := descriptor.Get(artifact.Key())
		names := entities.SplitLicenses(value)
		if len(names) == 0 {
			continue
		}
		r.logger.Debug("Resolved license from descriptor",
			interfaces.F("artifact", artifact.Key()),
			interfaces.F("licenses", value))
		licenseMap.RemoveFrom(entities.UnknownLicense, artifact.Key())
		r.assigner.AssignNames(licenseMap, artifact, names...)
		mapping.Set(artifact.Key(), entities.JoinLicenses(names))
		resolved = append(resolved, artifact.Key())
	}
	if licenseMap.Has(entities.UnknownLicense) && licenseMap.Size(entities.UnknownLicense) == 0 {
		licenseMap.Remove(entities.UnknownLicense)
	}
	return resolved
}

func (r *unsafeMappingResolver) markResidual(licenseMap *entities.LicenseMap, mapping *entities.UnsafeMapping) []string {
	if !licenseMap.Has(entities.UnknownLicense) {
		return nil
	}
	unknown := licenseMap.Get(entities.UnknownLicense)
	if len(unknown) == 0 {
		licenseMap.Remove(entities.UnknownLicense)
		return nil
	}
	residual := make([]string, 0, len(unknown))
	for _, artifact := range unknown {
		mapping.Set(artifact.Key(), "")
		residual = append(residual, artifact.Key())
	}
	r.logger.Warn("Artifacts without license", interfaces.F("count", len(residual)))
	return residual
}
