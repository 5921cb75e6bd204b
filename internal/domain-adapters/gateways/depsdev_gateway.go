package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// DepsDevResponse is the part of the deps.dev GetVersion answer we read
type DepsDevResponse struct {
	Licenses       []string               `json:"licenses"`
	LicenseDetails []DepsDevLicenseDetail `json:"licenseDetails"`
}

// DepsDevLicenseDetail maps a declared license to its SPDX expression
type DepsDevLicenseDetail struct {
	License string `json:"license"`
	SPDX    string `json:"spdx"`
}

// depsDevGateway implements LicenseLookup against the public deps.dev API
type depsDevGateway struct {
	apiURL     string
	httpClient *http.Client
}

// NewDepsDevGateway creates a new deps.dev gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewDepsDevGateway(timeout time.Duration) *depsDevGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &depsDevGateway{
		apiURL: "https://api.deps.dev/v3",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithAPIURL points the gateway at a mirror of the deps.dev API; empty keeps the public one
func (g *depsDevGateway) WithAPIURL(apiURL string) *depsDevGateway {
	if apiURL != "" {
		g.apiURL = apiURL
	}
	return g
}

// Name identifies the backend in logs and metrics
func (g *depsDevGateway) Name() string {
	return "depsdev"
}

// Lookup asks deps.dev for the licenses of a maven artifact version.
// Unknown packages and non-200 answers yield no license.
func (g *depsDevGateway) Lookup(ctx context.Context, artifact entities.ArtifactCoordinate) ([]entities.LicenseEntry, error) {
	endpoint := fmt.Sprintf("%s/systems/maven/packages/%s/versions/%s",
		strings.TrimRight(g.apiURL, "/"),
		url.PathEscape(artifact.Group+":"+artifact.Artifact),
		url.PathEscape(artifact.Version))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deps.dev API request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var body DepsDevResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse deps.dev response: %w", err)
	}

	licenses := make([]entities.LicenseEntry, 0, len(body.Licenses))
	for _, name := range body.Licenses {
		name = strings.TrimSpace(name)
		if name == "" || name == "non-standard" || name == entities.UnknownLicense {
			continue
		}
		entry := entities.LicenseEntry{Name: name}
		if !strings.Contains(name, " ") {
			entry.URL = "https://spdx.org/licenses/" + name + ".html"
		}
		licenses = append(licenses, entry)
	}
	return licenses, nil
}
