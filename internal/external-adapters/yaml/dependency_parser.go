// Package yaml reads dependency manifests and writes license reports.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"github.com/package-url/packageurl-go"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// yamlManifest represents the raw YAML structure of a dependency manifest
type yamlManifest struct {
	Project      string           `yaml:"project"`
	Dependencies []yamlDependency `yaml:"dependencies"`
}

type yamlDependency struct {
	PURL     string        `yaml:"purl"`
	Group    string        `yaml:"group"`
	Artifact string        `yaml:"artifact"`
	Version  string        `yaml:"version"`
	Scope    string        `yaml:"scope"`
	Licenses []yamlLicense `yaml:"licenses"`
}

type yamlLicense struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DependencyParser parses YAML dependency manifests
type DependencyParser struct{}

// NewDependencyParser creates a new YAML parser
func NewDependencyParser() *DependencyParser {
	return &DependencyParser{}
}

// ParseFile parses a manifest file into dependencies
func (p *DependencyParser) ParseFile(filePath string) ([]entities.Dependency, error) {
	//nolint:gosec // G304: filePath is the manifest path from configuration
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into dependencies, keeping manifest order
func (p *DependencyParser) Parse(data []byte) ([]entities.Dependency, error) {
	var manifest yamlManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	deps := make([]entities.Dependency, 0, len(manifest.Dependencies))
	for i, yd := range manifest.Dependencies {
		dep, err := convertDependency(yd)
		if err != nil {
			return nil, fmt.Errorf("dependency #%d: %w", i+1, err)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func convertDependency(yd yamlDependency) (entities.Dependency, error) {
	coord, err := convertCoordinate(yd)
	if err != nil {
		return entities.Dependency{}, err
	}

	licenses := make([]entities.LicenseEntry, 0, len(yd.Licenses))
	for _, l := range yd.Licenses {
		licenses = append(licenses, entities.LicenseEntry{Name: l.Name, URL: l.URL})
	}
	return entities.Dependency{Artifact: coord, Licenses: licenses}, nil
}

func convertCoordinate(yd yamlDependency) (entities.ArtifactCoordinate, error) {
	scope, err := entities.ParseScope(yd.Scope)
	if err != nil {
		return entities.ArtifactCoordinate{}, err
	}

	coord := entities.ArtifactCoordinate{
		Group:    strings.TrimSpace(yd.Group),
		Artifact: strings.TrimSpace(yd.Artifact),
		Version:  strings.TrimSpace(yd.Version),
		Scope:    scope,
	}

	if yd.PURL != "" {
		purl, err := packageurl.FromString(yd.PURL)
		if err != nil {
			return entities.ArtifactCoordinate{}, fmt.Errorf("invalid purl %q: %w", yd.PURL, err)
		}
		if purl.Type != packageurl.TypeMaven {
			return entities.ArtifactCoordinate{}, fmt.Errorf("purl %q is not a maven package", yd.PURL)
		}
		coord.Group, coord.Artifact, coord.Version = purl.Namespace, purl.Name, purl.Version
	}

	if coord.Group == "" || coord.Artifact == "" || coord.Version == "" {
		return entities.ArtifactCoordinate{}, fmt.Errorf("dependency must have group, artifact and version (or a purl)")
	}
	return coord, nil
}
