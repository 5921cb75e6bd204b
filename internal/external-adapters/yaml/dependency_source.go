package yaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// DependencySource implements repositories.DependencySource over manifest files.
// A path may be a single manifest or a directory of *.yml / *.yaml manifests.
type DependencySource struct {
	paths  []string
	parser *DependencyParser
}

// NewDependencySource creates a new YAML-based dependency source
func NewDependencySource(paths ...string) *DependencySource {
	return &DependencySource{
		paths:  paths,
		parser: NewDependencyParser(),
	}
}

// LoadDependencies reads every manifest in path order; directory entries are read by name
func (s *DependencySource) LoadDependencies(_ context.Context) ([]entities.Dependency, error) {
	var deps []entities.Dependency
	for _, path := range s.paths {
		files, err := manifestFiles(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			parsed, err := s.parser.ParseFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to load dependencies from %s: %w", file, err)
			}
			deps = append(deps, parsed...)
		}
	}
	return deps, nil
}

func manifestFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dependency manifest: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		// Skip non-YAML files
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")) {
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	sort.Strings(files)
	return files, nil
}
