// Package entities defines core domain models and data structures.
package entities

import (
	"fmt"
	"sort"
	"strings"

	"github.com/package-url/packageurl-go"
)

// KeySeparator joins the parts of an artifact key ("group--artifact--version")
const KeySeparator = "--"

// Scope is the dependency scope an artifact was resolved in
type Scope string

// Supported dependency scopes
const (
	ScopeCompile  Scope = "compile"
	ScopeRuntime  Scope = "runtime"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
	ScopeProvided Scope = "provided"
)

// ParseScope converts a raw scope string into a Scope.
// An empty string defaults to compile, like Maven does.
func ParseScope(raw string) (Scope, error) {
	switch s := Scope(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return ScopeCompile, nil
	case ScopeCompile, ScopeRuntime, ScopeTest, ScopeSystem, ScopeProvided:
		return s, nil
	default:
		return "", fmt.Errorf("unknown dependency scope %q", raw)
	}
}

// ArtifactCoordinate identifies one resolved dependency at one version
type ArtifactCoordinate struct {
	Group    string
	Artifact string
	Version  string
	Scope    Scope
}

// Key returns the stable identity used as map key and as persisted-file key
func (a ArtifactCoordinate) Key() string {
	return a.Group + KeySeparator + a.Artifact + KeySeparator + a.Version
}

// String renders the coordinate the way build tools print it (group:artifact:version)
func (a ArtifactCoordinate) String() string {
	return a.Group + ":" + a.Artifact + ":" + a.Version
}

// PURL returns the maven package URL of the artifact
func (a ArtifactCoordinate) PURL() string {
	return packageurl.NewPackageURL(packageurl.TypeMaven, a.Group, a.Artifact, a.Version, nil, "").ToString()
}

// ArtifactCache holds every artifact resolved during a single run, keyed by Key().
// It is created per run and passed explicitly; it is not safe for concurrent use.
type ArtifactCache struct {
	byKey map[string]ArtifactCoordinate
}

// NewArtifactCache creates a cache pre-populated with the given artifacts
func NewArtifactCache(artifacts ...ArtifactCoordinate) *ArtifactCache {
	c := &ArtifactCache{byKey: make(map[string]ArtifactCoordinate, len(artifacts))}
	for _, a := range artifacts {
		c.Put(a)
	}
	return c
}

// Put stores an artifact, replacing any artifact with the same key
func (c *ArtifactCache) Put(a ArtifactCoordinate) {
	c.byKey[a.Key()] = a
}

// Get returns the artifact stored under key
func (c *ArtifactCache) Get(key string) (ArtifactCoordinate, bool) {
	a, ok := c.byKey[key]
	return a, ok
}

// Contains reports whether an artifact is stored under key
func (c *ArtifactCache) Contains(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Len returns the number of cached artifacts
func (c *ArtifactCache) Len() int {
	return len(c.byKey)
}

// Keys returns all artifact keys in ascending order
func (c *ArtifactCache) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Artifacts returns all cached artifacts ordered by key
func (c *ArtifactCache) Artifacts() []ArtifactCoordinate {
	keys := c.Keys()
	out := make([]ArtifactCoordinate, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.byKey[k])
	}
	return out
}

// FindByName returns the artifacts whose group and artifact id match exactly, ordered by key
func (c *ArtifactCache) FindByName(group, artifact string) []ArtifactCoordinate {
	var out []ArtifactCoordinate
	for _, a := range c.Artifacts() {
		if a.Group == group && a.Artifact == artifact {
			out = append(out, a)
		}
	}
	return out
}

// Dependency is a resolved artifact together with the licenses it declares
type Dependency struct {
	Artifact ArtifactCoordinate
	Licenses []LicenseEntry
}
