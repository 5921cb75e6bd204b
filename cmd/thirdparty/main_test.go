package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/thirdparty/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/thirdparty/internal/domain-orchestrators"
	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/versionrange"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const projectManifest = `project: demo
dependencies:
  - group: org.a
    artifact: lib-a
    version: "1.0"
    licenses:
      - name: Apache 2
        url: https://www.apache.org/licenses/LICENSE-2.0
  - group: org.b
    artifact: lib-b
    version: "2.0"
  - group: org.e
    artifact: lib-e
    version: "1.5"
    licenses:
      - name: MIT
`

const projectConfig = `dependencies: [deps.yml]
overrides:
  - override-THIRD-PARTY.properties
  - not-there.properties
missingFile: THIRD-PARTY.properties
merges:
  - "Apache-2.0|Apache 2"
report:
  path: out/THIRD-PARTY.json
  format: json
metricsFile: thirdparty.prom
`

func TestReconcileCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deps.yml", projectManifest)
	writeFile(t, dir, "override-THIRD-PARTY.properties", "org.e--lib-e--[1.0,2.0)=EPL-1.0\n")
	configPath := writeFile(t, dir, "thirdparty.yml", projectConfig)

	out, err := execute(t, "reconcile", "--config", configPath, "--log-level", "error")

	require.NoError(t, err)
	assert.Contains(t, out, "Reconciliation successful!")
	assert.Contains(t, out, "Without license (1): org.b--lib-b--2.0")

	missing, err := os.ReadFile(filepath.Join(dir, "THIRD-PARTY.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(missing), "org.b--lib-b--2.0 =")

	data, err := os.ReadFile(filepath.Join(dir, "out", "THIRD-PARTY.json"))
	require.NoError(t, err)
	var report struct {
		Licenses []struct {
			Name string `json:"name"`
		} `json:"licenses"`
		Unresolved []string `json:"unresolved"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	names := make([]string, 0, len(report.Licenses))
	for _, l := range report.Licenses {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Apache-2.0", "EPL-1.0", entities.UnknownLicense}, names)
	assert.Equal(t, []string{"org.b--lib-b--2.0"}, report.Unresolved)

	assert.FileExists(t, filepath.Join(dir, "thirdparty.prom"))

	_, err = execute(t, "reconcile", "--config", configPath, "--log-level", "error", "--fail-on-unknown")
	assert.ErrorIs(t, err, orchestrators.ErrUnresolvedLicenses)
}

func TestReconcileCommand_UsesFilledMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deps.yml", projectManifest)
	writeFile(t, dir, "THIRD-PARTY.properties", "org.b--lib-b--2.0--jar=BSD-3-Clause\n")
	configPath := writeFile(t, dir, "thirdparty.toml", `dependencies = ["deps.yml"]
missingFile = "THIRD-PARTY.properties"
failOnUnknown = true
`)

	out, err := execute(t, "reconcile", "--config", configPath, "--log-level", "error")

	require.NoError(t, err)
	assert.NotContains(t, out, "Without license")

	missing, err := os.ReadFile(filepath.Join(dir, "THIRD-PARTY.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(missing), "org.b--lib-b--2.0 = BSD-3-Clause")
	assert.NotContains(t, string(missing), "--jar")
}

func TestReconcileCommand_BadConfig(t *testing.T) {
	_, err := execute(t, "reconcile", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestCheckMergesCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "merges.txt", "# merges\nMIT | The MIT License\n\nApache-2.0|ASL 2.0\n")

	out, err := execute(t, "check-merges", "--file", file, "--merge", "Apache-2.0|Apache 2")

	require.NoError(t, err)
	assert.Contains(t, out, "✅ 3 merge line(s) valid")
	assert.Contains(t, out, "MIT <- The MIT License")

	_, err = execute(t, "check-merges", "--merge", "MIT|X11", "--merge", "BSD|X11")
	assert.ErrorIs(t, err, entities.ErrDuplicateAlias)

	_, err = execute(t, "check-merges", "--merge", "| Apache-2.0")
	assert.ErrorIs(t, err, entities.ErrMalformedMerge)

	_, err = execute(t, "check-merges")
	assert.ErrorContains(t, err, "no merges given")
}

func TestMatchCommand(t *testing.T) {
	out, err := execute(t, "match", "[1.0,2.0)", "1.0", "1.5-SNAPSHOT", "2.0")

	require.NoError(t, err)
	assert.Contains(t, out, "✅ 1.0 matches")
	assert.Contains(t, out, "✅ 1.5-SNAPSHOT matches")
	assert.Contains(t, out, "❌ 2.0 does not match")

	_, err = execute(t, "match", "[1.0,2.0", "1.0")
	assert.ErrorIs(t, err, versionrange.ErrInvalidRange)

	_, err = execute(t, "match", "[1.0]")
	assert.Error(t, err)
}

func TestVerifyCommand_Digest(t *testing.T) {
	content := "org.e--lib-e--[1.0,2.0)=EPL-1.0\n"
	file := writeFile(t, t.TempDir(), "override.properties", content)
	digest := gateways.NewChecksumVerifier().Digest([]byte(content))

	out, err := execute(t, "verify", file, "--digest", digest)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Digest verified")

	_, err = execute(t, "verify", file, "--digest", "sha256:0000")
	assert.Error(t, err)

	_, err = execute(t, "verify", file)
	assert.ErrorContains(t, err, "nothing to verify")
}

func TestLookupCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v3/systems/maven/packages/org.x:lib/versions/1.0" {
			_, _ = w.Write([]byte(`{"licenses":["MIT"]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	out, err := execute(t, "lookup", "--depsdev-url", server.URL+"/v3", "org.x:lib:1.0", "org.y:other:2.0")

	require.NoError(t, err)
	assert.Contains(t, out, "✅ org.x:lib:1.0")
	assert.Contains(t, out, "MIT (https://spdx.org/licenses/MIT.html)")
	assert.Contains(t, out, "❓ org.y:other:2.0: no license known")

	_, err = execute(t, "lookup", "not-a-coordinate")
	assert.ErrorContains(t, err, "expected group:artifact:version")

	t.Setenv("THIRDPARTY_XRAY_URL", "")
	t.Setenv("THIRDPARTY_XRAY_TOKEN", "")
	_, err = execute(t, "lookup", "--backend", "xray", "org.x:lib:1.0")
	assert.ErrorContains(t, err, "xray lookup needs a valid url")
}
