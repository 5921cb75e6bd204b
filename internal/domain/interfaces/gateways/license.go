// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// LicenseLookup resolves the licenses of an artifact whose POM declares none.
// An empty result means the backend does not know the artifact.
type LicenseLookup interface {
	Name() string
	Lookup(ctx context.Context, artifact entities.ArtifactCoordinate) ([]entities.LicenseEntry, error)
}

// ContentFetcher reads a license data file from a local path or a registry URL
type ContentFetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// SignatureVerifier checks a detached OpenPGP signature
type SignatureVerifier interface {
	VerifyDetached(data, signature []byte) error
}
