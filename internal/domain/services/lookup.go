package services

import (
	"context"
	"fmt"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/gateways"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/services"
)

// lookupService implements LookupService
type lookupService struct {
	backends []gateways.LicenseLookup
	assigner services.LicenseAssigner
	logger   interfaces.Logger
}

// NewLookupService creates the service that queries backends for Unknown artifacts.
// Backends run in the given order, each one over what the previous left unknown.
func NewLookupService(assigner services.LicenseAssigner, logger interfaces.Logger, backends ...gateways.LicenseLookup) services.LookupService {
	return &lookupService{backends: backends, assigner: assigner, logger: orNoOp(logger)}
}

// Resolve moves every artifact a backend knows out of Unknown and records the returned
// licenses. Backend errors are logged and counted; only context cancellation aborts.
func (s *lookupService) Resolve(ctx context.Context, licenseMap *entities.LicenseMap) (entities.LookupOutcome, error) {
	outcome := entities.LookupOutcome{Resolved: make(map[string]int)}

	for _, backend := range s.backends {
		for _, artifact := range licenseMap.Get(entities.UnknownLicense) {
			if err := ctx.Err(); err != nil {
				return outcome, fmt.Errorf("license lookup interrupted: %w", err)
			}

			licenses, err := backend.Lookup(ctx, artifact)
			if err != nil {
				s.logger.Warn("License lookup failed",
					interfaces.F("backend", backend.Name()),
					interfaces.F("artifact", artifact.Key()),
					interfaces.F("error", err.Error()))
				outcome.Failures++
				continue
			}
			if len(licenses) == 0 {
				continue
			}

			s.logger.Debug("Resolved license remotely",
				interfaces.F("backend", backend.Name()),
				interfaces.F("artifact", artifact.Key()))
			licenseMap.RemoveFrom(entities.UnknownLicense, artifact.Key())
			s.assigner.Assign(licenseMap, artifact, licenses)
			outcome.Resolved[backend.Name()]++
		}
	}

	if licenseMap.Has(entities.UnknownLicense) && licenseMap.Size(entities.UnknownLicense) == 0 {
		licenseMap.Remove(entities.UnknownLicense)
	}
	return outcome, nil
}
