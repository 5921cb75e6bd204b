package properties

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/gateways"
)

// OverrideSource implements repositories.OverrideSource.
// Locations are read in order so records of a later file win; a missing file is skipped.
type OverrideSource struct {
	locations []string
	fetcher   gateways.ContentFetcher
	logger    interfaces.Logger
}

// NewOverrideSource creates an override source over local paths or registry locations
func NewOverrideSource(fetcher gateways.ContentFetcher, logger interfaces.Logger, locations ...string) *OverrideSource {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &OverrideSource{locations: locations, fetcher: fetcher, logger: logger}
}

// LoadOverrides reads and decodes every override location
func (s *OverrideSource) LoadOverrides(ctx context.Context) (entities.OverrideSet, error) {
	var set entities.OverrideSet
	for _, location := range s.locations {
		data, err := s.fetcher.Fetch(ctx, location)
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No override file", interfaces.F("location", location))
			continue
		}
		if err != nil {
			return entities.OverrideSet{}, fmt.Errorf("failed to read override file %s: %w", location, err)
		}

		parsed, err := ParseOverrides(data)
		if err != nil {
			return entities.OverrideSet{}, fmt.Errorf("failed to parse override file %s: %w", location, err)
		}
		s.logger.Info("Loaded overrides",
			interfaces.F("location", location),
			interfaces.F("records", len(parsed.Records)))
		set.Append(parsed)
	}
	return set, nil
}

// DescriptorSource implements repositories.DescriptorSource.
// Every configured license database is required.
type DescriptorSource struct {
	locations []string
	fetcher   gateways.ContentFetcher
}

// NewDescriptorSource creates a source of shared license databases
func NewDescriptorSource(fetcher gateways.ContentFetcher, locations ...string) *DescriptorSource {
	return &DescriptorSource{locations: locations, fetcher: fetcher}
}

// LoadDescriptors fetches and decodes every database in order
func (s *DescriptorSource) LoadDescriptors(ctx context.Context) ([]*entities.UnsafeMapping, error) {
	out := make([]*entities.UnsafeMapping, 0, len(s.locations))
	for _, location := range s.locations {
		data, err := s.fetcher.Fetch(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to read license database %s: %w", location, err)
		}
		entries, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse license database %s: %w", location, err)
		}
		out = append(out, entities.UnsafeMappingFrom(entries))
	}
	return out, nil
}

// MappingStore implements repositories.UnsafeMappingStore on a local file
type MappingStore struct {
	path string
}

// NewMappingStore creates a store for the missing-license file at path
func NewMappingStore(path string) *MappingStore {
	return &MappingStore{path: path}
}

// Path returns the file location
func (s *MappingStore) Path() string {
	return s.path
}

// Load reads the file; a missing file means no prior history
func (s *MappingStore) Load(_ context.Context) (*entities.UnsafeMapping, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entities.NewUnsafeMapping(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read missing-license file: %w", err)
	}

	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse missing-license file %s: %w", s.path, err)
	}
	return entities.UnsafeMappingFrom(entries), nil
}

// Save writes the mapping sorted by key, creating parent directories
func (s *MappingStore) Save(_ context.Context, mapping *entities.UnsafeMapping) error {
	data, err := Encode(mapping.Entries(), "Generated by thirdparty; fill in empty values by hand")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for missing-license file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write missing-license file: %w", err)
	}
	return nil
}
