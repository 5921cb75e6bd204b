package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	artA = ArtifactCoordinate{Group: "g", Artifact: "a", Version: "1.0"}
	artB = ArtifactCoordinate{Group: "g", Artifact: "b", Version: "1.0"}
	artC = ArtifactCoordinate{Group: "g", Artifact: "c", Version: "1.0"}
)

func TestLicenseMapOrdering(t *testing.T) {
	m := NewLicenseMap()
	m.Put("MIT", artB)
	m.Put("Apache-2.0", artC)
	m.Put("MIT", artA)
	m.Put("MIT", artA)

	assert.Equal(t, []string{"Apache-2.0", "MIT"}, m.Names())
	assert.Equal(t, []ArtifactCoordinate{artA, artB}, m.Get("MIT"))
	assert.Equal(t, 2, m.Size("MIT"))
	assert.Empty(t, m.Get("GPL"))
}

func TestLicenseMapRemoveArtifactKeepsEmptySets(t *testing.T) {
	m := NewLicenseMap()
	m.Put("MIT", artA)
	m.Put("Apache-2.0", artA)
	m.Put("Apache-2.0", artB)

	m.RemoveArtifact(artA.Key())

	assert.True(t, m.Has("MIT"))
	assert.Equal(t, 0, m.Size("MIT"))
	assert.Equal(t, []ArtifactCoordinate{artB}, m.Get("Apache-2.0"))

	m.RemoveEmptyLicenses()
	assert.Equal(t, []string{"Apache-2.0"}, m.Names())
}

func TestLicenseMapRemoveFrom(t *testing.T) {
	m := NewLicenseMap()
	m.Put(UnknownLicense, artA)

	assert.True(t, m.RemoveFrom(UnknownLicense, artA.Key()))
	assert.False(t, m.RemoveFrom(UnknownLicense, artA.Key()))
	assert.False(t, m.RemoveFrom("MIT", artA.Key()))
	assert.True(t, m.Has(UnknownLicense))
}

func TestLicenseMapDependencyMap(t *testing.T) {
	m := NewLicenseMap()
	m.Put("MIT", artA)
	m.Put("Apache-2.0", artA)
	m.Put("MIT", artB)

	deps := m.DependencyMap()

	assert.Equal(t, []string{"Apache-2.0", "MIT"}, deps[artA.Key()])
	assert.Equal(t, []string{"MIT"}, deps[artB.Key()])
	assert.Equal(t, []string{"Apache-2.0", "MIT"}, m.LicensesOf(artA.Key()))
}

func TestLicenseMapCloneIsIndependent(t *testing.T) {
	m := NewLicenseMap()
	m.Put("MIT", artA)

	c := m.Clone()
	c.Put("MIT", artB)
	c.Remove("MIT")

	assert.Equal(t, map[string][]string{"MIT": {artA.Key()}}, m.Snapshot())
	assert.Equal(t, 0, c.Len())
}
