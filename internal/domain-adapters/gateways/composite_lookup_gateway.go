package gateways

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/gateways"
)

// compositeLookupGateway implements LicenseLookup by asking each backend in turn
type compositeLookupGateway struct {
	backends []gateways.LicenseLookup
}

// NewCompositeLookupGateway chains backends; the first non-empty answer wins
func NewCompositeLookupGateway(backends ...gateways.LicenseLookup) gateways.LicenseLookup {
	return &compositeLookupGateway{backends: backends}
}

// Name lists the chained backends
func (c *compositeLookupGateway) Name() string {
	names := make([]string, 0, len(c.backends))
	for _, b := range c.backends {
		names = append(names, b.Name())
	}
	return "composite(" + strings.Join(names, ",") + ")"
}

// Lookup returns the first non-empty answer. Errors are only returned when no backend answered.
func (c *compositeLookupGateway) Lookup(ctx context.Context, artifact entities.ArtifactCoordinate) ([]entities.LicenseEntry, error) {
	var errs []error
	for _, b := range c.backends {
		licenses, err := b.Lookup(ctx, artifact)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if len(licenses) > 0 {
			return licenses, nil
		}
	}
	return nil, errors.Join(errs...)
}
