// Package services implements domain business logic and use cases.
package services

import (
	"strings"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/services"
)

// licenseAssigner implements LicenseAssigner
type licenseAssigner struct {
	logger interfaces.Logger
}

// NewLicenseAssigner creates the service that fills a license map from declarations
func NewLicenseAssigner(logger interfaces.Logger) services.LicenseAssigner {
	return &licenseAssigner{logger: orNoOp(logger)}
}

// Assign records every declared license of artifact. System-scoped artifacts are never recorded
// and an artifact without declarations goes to the Unknown license.
func (s *licenseAssigner) Assign(licenseMap *entities.LicenseMap, artifact entities.ArtifactCoordinate, declared []entities.LicenseEntry) {
	if artifact.Scope == entities.ScopeSystem {
		s.logger.Debug("Ignoring system-scoped artifact", interfaces.F("artifact", artifact.Key()))
		return
	}

	if len(declared) == 0 {
		licenseMap.Put(entities.UnknownLicense, artifact)
		return
	}

	for _, license := range declared {
		key := strings.TrimSpace(license.Name)
		if key == "" {
			s.logger.Warn("License has no name, using its url",
				interfaces.F("artifact", artifact.Key()),
				interfaces.F("url", license.URL))
			key = strings.TrimSpace(license.URL)
		}
		if key == "" {
			s.logger.Warn("License has neither name nor url",
				interfaces.F("artifact", artifact.Key()))
			key = entities.UnknownLicense
		}
		for _, id := range splitIdentifiers(key) {
			licenseMap.Put(id, artifact)
		}
	}
}

// AssignNames records licenses given as plain names, each name doubling as its url
func (s *licenseAssigner) AssignNames(licenseMap *entities.LicenseMap, artifact entities.ArtifactCoordinate, names ...string) {
	declared := make([]entities.LicenseEntry, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		declared = append(declared, entities.LicenseEntry{Name: name, URL: name})
	}
	s.Assign(licenseMap, artifact, declared)
}

// splitIdentifiers breaks a comma joined key into its license identifiers.
// Url keys are kept whole since urls may carry commas.
func splitIdentifiers(key string) []string {
	if strings.Contains(key, "://") {
		return []string{key}
	}
	var ids []string
	for _, part := range strings.Split(key, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []string{entities.UnknownLicense}
	}
	return ids
}

func orNoOp(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return &interfaces.NoOpLogger{}
	}
	return logger
}
