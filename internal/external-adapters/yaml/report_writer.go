package yaml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// Report formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Report is the third-party license report written at the end of a run
type Report struct {
	RunID       string          `yaml:"run_id" json:"run_id"`
	GeneratedAt string          `yaml:"generated_at" json:"generated_at"`
	Licenses    []ReportLicense `yaml:"licenses" json:"licenses"`
	// Unresolved lists artifact keys still under the Unknown license
	Unresolved []string `yaml:"unresolved,omitempty" json:"unresolved,omitempty"`
}

// ReportLicense groups the artifacts of one license
type ReportLicense struct {
	Name      string           `yaml:"name" json:"name"`
	Artifacts []ReportArtifact `yaml:"artifacts" json:"artifacts"`
}

// ReportArtifact is one artifact line of the report
type ReportArtifact struct {
	Coordinate string `yaml:"coordinate" json:"coordinate"`
	Scope      string `yaml:"scope,omitempty" json:"scope,omitempty"`
	PURL       string `yaml:"purl" json:"purl"`
}

// NewReport builds a report from the final license map, licenses in ascending order
func NewReport(runID string, licenseMap *entities.LicenseMap, generatedAt time.Time) *Report {
	report := &Report{
		RunID:       runID,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Licenses:    make([]ReportLicense, 0, licenseMap.Len()),
	}
	for _, name := range licenseMap.Names() {
		artifacts := licenseMap.Get(name)
		entry := ReportLicense{Name: name, Artifacts: make([]ReportArtifact, 0, len(artifacts))}
		for _, a := range artifacts {
			entry.Artifacts = append(entry.Artifacts, ReportArtifact{
				Coordinate: a.String(),
				Scope:      string(a.Scope),
				PURL:       a.PURL(),
			})
			if name == entities.UnknownLicense {
				report.Unresolved = append(report.Unresolved, a.Key())
			}
		}
		report.Licenses = append(report.Licenses, entry)
	}
	return report
}

// Marshal encodes the report in the given format
func (r *Report) Marshal(format string) ([]byte, error) {
	switch format {
	case FormatYAML, "yml", "":
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as YAML: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile writes the report, creating parent directories
func (r *Report) WriteFile(path, format string) error {
	data, err := r.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
