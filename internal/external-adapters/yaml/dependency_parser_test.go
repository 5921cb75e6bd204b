package yaml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

const sampleManifest = `project: demo
dependencies:
  - group: org.slf4j
    artifact: slf4j-api
    version: 2.0.9
    licenses:
      - name: MIT License
        url: https://opensource.org/licenses/MIT
  - purl: pkg:maven/com.jfrog/xray-client@7.7.1-966
    scope: runtime
  - group: com.sun
    artifact: tools
    version: "1.8"
    scope: system
`

func TestDependencyParser_Parse_Valid(t *testing.T) {
	deps, err := NewDependencyParser().Parse([]byte(sampleManifest))
	require.NoError(t, err)
	require.Len(t, deps, 3)

	assert.Equal(t, "org.slf4j--slf4j-api--2.0.9", deps[0].Artifact.Key())
	assert.Equal(t, entities.ScopeCompile, deps[0].Artifact.Scope)
	assert.Equal(t, []entities.LicenseEntry{{Name: "MIT License", URL: "https://opensource.org/licenses/MIT"}}, deps[0].Licenses)

	assert.Equal(t, entities.ArtifactCoordinate{Group: "com.jfrog", Artifact: "xray-client", Version: "7.7.1-966", Scope: entities.ScopeRuntime}, deps[1].Artifact)
	assert.Empty(t, deps[1].Licenses)

	assert.Equal(t, entities.ScopeSystem, deps[2].Artifact.Scope)
}

func TestDependencyParser_Parse_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing version": "dependencies:\n  - group: g\n    artifact: a\n",
		"bad scope":       "dependencies:\n  - group: g\n    artifact: a\n    version: '1'\n    scope: import\n",
		"npm purl":        "dependencies:\n  - purl: pkg:npm/left-pad@1.3.0\n",
		"bad purl":        "dependencies:\n  - purl: not-a-purl\n",
		"bad yaml":        "dependencies: [",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewDependencyParser().Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestDependencySource_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("dependencies:\n  - group: g\n    artifact: b\n    version: '1'\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("dependencies:\n  - group: g\n    artifact: a\n    version: '1'\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	deps, err := NewDependencySource(dir).LoadDependencies(context.Background())

	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "a", deps[0].Artifact.Artifact)
	assert.Equal(t, "b", deps[1].Artifact.Artifact)
}

func TestDependencySource_MissingPath(t *testing.T) {
	_, err := NewDependencySource(filepath.Join(t.TempDir(), "absent.yml")).LoadDependencies(context.Background())
	assert.Error(t, err)
}
