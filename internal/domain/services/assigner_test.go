package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/testutil"
)

func art(group, artifact, version string) entities.ArtifactCoordinate {
	return entities.ArtifactCoordinate{Group: group, Artifact: artifact, Version: version, Scope: entities.ScopeCompile}
}

func keys(artifacts []entities.ArtifactCoordinate) []string {
	out := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, a.Key())
	}
	return out
}

func TestAssignWithoutDeclarationsGoesToUnknown(t *testing.T) {
	m := entities.NewLicenseMap()
	NewLicenseAssigner(nil).Assign(m, art("g", "a", "1.0"), nil)

	assert.Equal(t, map[string][]string{entities.UnknownLicense: {"g--a--1.0"}}, m.Snapshot())
}

func TestAssignIgnoresSystemScope(t *testing.T) {
	m := entities.NewLicenseMap()
	system := art("g", "tools", "1.8")
	system.Scope = entities.ScopeSystem

	NewLicenseAssigner(nil).Assign(m, system, []entities.LicenseEntry{{Name: "GPL"}})
	NewLicenseAssigner(nil).Assign(m, system, nil)

	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.LicensesOf(system.Key()))
}

func TestAssignFallbacks(t *testing.T) {
	logger := &testutil.RecordingLogger{}
	m := entities.NewLicenseMap()
	a := art("g", "a", "1.0")

	NewLicenseAssigner(logger).Assign(m, a, []entities.LicenseEntry{
		{Name: "  ", URL: "https://opensource.org/licenses/MIT"},
		{},
	})

	assert.Equal(t, []string{entities.UnknownLicense, "https://opensource.org/licenses/MIT"}, m.Names())
	assert.Len(t, logger.Entries("WARN"), 3)
}

func TestAssignSplitsCommaJoinedNames(t *testing.T) {
	m := entities.NewLicenseMap()
	a := art("g", "a", "1.0")

	NewLicenseAssigner(nil).Assign(m, a, []entities.LicenseEntry{{Name: "MIT, Apache-2.0 ,"}})

	assert.Equal(t, []string{"Apache-2.0", "MIT"}, m.LicensesOf(a.Key()))
}

func TestAssignKeepsUrlKeysWhole(t *testing.T) {
	m := entities.NewLicenseMap()
	a := art("g", "a", "1.0")

	NewLicenseAssigner(nil).Assign(m, a, []entities.LicenseEntry{{URL: "https://example.com/license?a=1,2"}})

	assert.Equal(t, []string{"https://example.com/license?a=1,2"}, m.Names())
}

func TestAssignIsAdditiveAndNeverDuplicates(t *testing.T) {
	m := entities.NewLicenseMap()
	a, b := art("g", "a", "1.0"), art("g", "b", "1.0")
	assigner := NewLicenseAssigner(nil)

	assigner.Assign(m, a, []entities.LicenseEntry{{Name: "MIT"}})
	assigner.Assign(m, b, []entities.LicenseEntry{{Name: "MIT"}, {Name: "MIT"}})
	assigner.AssignNames(m, a, " MIT ")

	assert.Equal(t, []string{"g--a--1.0", "g--b--1.0"}, keys(m.Get("MIT")))
}
