// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// DependencySource lists the resolved artifacts of a project with their declared licenses
type DependencySource interface {
	LoadDependencies(ctx context.Context) ([]entities.Dependency, error)
}

// OverrideSource loads override records. A missing local file yields an empty set.
type OverrideSource interface {
	LoadOverrides(ctx context.Context) (entities.OverrideSet, error)
}

// UnsafeMappingStore loads and saves the missing-license file
type UnsafeMappingStore interface {
	// Load returns an empty mapping when the file does not exist
	Load(ctx context.Context) (*entities.UnsafeMapping, error)
	Save(ctx context.Context, mapping *entities.UnsafeMapping) error
}

// DescriptorSource loads shared license databases in the missing-license format
type DescriptorSource interface {
	LoadDescriptors(ctx context.Context) ([]*entities.UnsafeMapping, error)
}

// MergeSpecSource loads license merge lines
type MergeSpecSource interface {
	LoadMergeSpecs(ctx context.Context) ([]entities.MergeSpec, error)
}
