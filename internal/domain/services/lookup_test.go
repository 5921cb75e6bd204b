package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// mockLookup is a mock implementation for testing
type mockLookup struct {
	name     string
	licenses map[string][]entities.LicenseEntry
	errs     map[string]error
	calls    []string
}

func (m *mockLookup) Name() string {
	return m.name
}

func (m *mockLookup) Lookup(_ context.Context, artifact entities.ArtifactCoordinate) ([]entities.LicenseEntry, error) {
	m.calls = append(m.calls, artifact.Key())
	if err := m.errs[artifact.Key()]; err != nil {
		return nil, err
	}
	return m.licenses[artifact.Key()], nil
}

func TestLookupResolvesUnknownArtifacts(t *testing.T) {
	a, b, c := art("g", "a", "1.0"), art("g", "b", "1.0"), art("g", "c", "1.0")
	m := entities.NewLicenseMap()
	m.Put(entities.UnknownLicense, a)
	m.Put(entities.UnknownLicense, b)
	m.Put(entities.UnknownLicense, c)
	m.Put("MIT", art("g", "known", "1.0"))

	first := &mockLookup{
		name:     "depsdev",
		licenses: map[string][]entities.LicenseEntry{"g--a--1.0": {{Name: "Apache-2.0"}}},
		errs:     map[string]error{"g--c--1.0": errors.New("timeout")},
	}
	second := &mockLookup{
		name:     "xray",
		licenses: map[string][]entities.LicenseEntry{"g--a--1.0": {{Name: "GPL"}}, "g--c--1.0": {{Name: "BSD"}}},
	}

	outcome, err := NewLookupService(NewLicenseAssigner(nil), nil, first, second).Resolve(context.Background(), m)

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"Apache-2.0":            {"g--a--1.0"},
		"BSD":                   {"g--c--1.0"},
		"MIT":                   {"g--known--1.0"},
		entities.UnknownLicense: {"g--b--1.0"},
	}, m.Snapshot())
	assert.Equal(t, map[string]int{"depsdev": 1, "xray": 1}, outcome.Resolved)
	assert.Equal(t, 1, outcome.Failures)
	assert.Equal(t, []string{"g--b--1.0", "g--c--1.0"}, second.calls)
}

func TestLookupDropsEmptiedUnknown(t *testing.T) {
	a := art("g", "a", "1.0")
	m := entities.NewLicenseMap()
	m.Put(entities.UnknownLicense, a)
	backend := &mockLookup{name: "depsdev", licenses: map[string][]entities.LicenseEntry{"g--a--1.0": {{Name: "MIT"}}}}

	_, err := NewLookupService(NewLicenseAssigner(nil), nil, backend).Resolve(context.Background(), m)

	require.NoError(t, err)
	assert.Equal(t, []string{"MIT"}, m.Names())
}

func TestLookupStopsOnCancelledContext(t *testing.T) {
	m := entities.NewLicenseMap()
	m.Put(entities.UnknownLicense, art("g", "a", "1.0"))
	backend := &mockLookup{name: "depsdev"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLookupService(NewLicenseAssigner(nil), nil, backend).Resolve(ctx, m)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, backend.calls)
	assert.True(t, m.Has(entities.UnknownLicense))
}
