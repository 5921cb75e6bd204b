package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactCoordinateKey(t *testing.T) {
	a := ArtifactCoordinate{Group: "org.slf4j", Artifact: "slf4j-api", Version: "2.0.9", Scope: ScopeCompile}

	assert.Equal(t, "org.slf4j--slf4j-api--2.0.9", a.Key())
	assert.Equal(t, "org.slf4j:slf4j-api:2.0.9", a.String())
	assert.Equal(t, "pkg:maven/org.slf4j/slf4j-api@2.0.9", a.PURL())
}

func TestArtifactKeyIgnoresScope(t *testing.T) {
	compile := ArtifactCoordinate{Group: "g", Artifact: "a", Version: "1", Scope: ScopeCompile}
	test := ArtifactCoordinate{Group: "g", Artifact: "a", Version: "1", Scope: ScopeTest}

	assert.Equal(t, compile.Key(), test.Key())
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		raw     string
		want    Scope
		wantErr bool
	}{
		{raw: "", want: ScopeCompile},
		{raw: "compile", want: ScopeCompile},
		{raw: " System ", want: ScopeSystem},
		{raw: "provided", want: ScopeProvided},
		{raw: "import", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseScope(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArtifactCache(t *testing.T) {
	cache := NewArtifactCache(
		ArtifactCoordinate{Group: "g", Artifact: "b", Version: "1.0"},
		ArtifactCoordinate{Group: "g", Artifact: "a", Version: "2.0"},
		ArtifactCoordinate{Group: "g", Artifact: "a", Version: "1.0"},
		ArtifactCoordinate{Group: "h", Artifact: "a", Version: "1.0"},
	)

	assert.Equal(t, 4, cache.Len())
	assert.Equal(t, []string{"g--a--1.0", "g--a--2.0", "g--b--1.0", "h--a--1.0"}, cache.Keys())
	assert.True(t, cache.Contains("g--b--1.0"))
	assert.False(t, cache.Contains("g--b--2.0"))

	found := cache.FindByName("g", "a")
	require.Len(t, found, 2)
	assert.Equal(t, "1.0", found[0].Version)
	assert.Equal(t, "2.0", found[1].Version)

	got, ok := cache.Get("h--a--1.0")
	require.True(t, ok)
	assert.Equal(t, "h", got.Group)
}

func TestSplitLicenses(t *testing.T) {
	assert.Equal(t, []string{"MIT", "Apache-2.0"}, SplitLicenses(" MIT | Apache-2.0 "))
	assert.Equal(t, []string{"MIT"}, SplitLicenses("MIT||"))
	assert.Empty(t, SplitLicenses(""))
	assert.Equal(t, "MIT|Apache-2.0", JoinLicenses([]string{"MIT", "Apache-2.0"}))
}
