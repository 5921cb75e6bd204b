package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// Files with these markers are not the main jar of an artifact
var excludedClassifiers = []string{"-sources", "-javadoc", "-tests", "-shaded", "-bundle", "-native"}

// GAVCSearchResponse is the Artifactory GAVC search answer
type GAVCSearchResponse struct {
	Results []struct {
		URI string `json:"uri"`
	} `json:"results"`
}

// XraySummaryRequest asks Xray for the summary of repository paths
type XraySummaryRequest struct {
	Paths []string `json:"paths"`
}

// XraySummaryResponse is the part of the Xray artifact summary we read
type XraySummaryResponse struct {
	Artifacts []XrayArtifact `json:"artifacts"`
}

// XrayArtifact is one summarized artifact
type XrayArtifact struct {
	General struct {
		Path string `json:"path"`
	} `json:"general"`
	Licenses []XrayLicense `json:"licenses"`
}

// XrayLicense is a license Xray detected for an artifact
type XrayLicense struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	MoreInfoURL []string `json:"more_info_url"`
}

// xrayGateway implements LicenseLookup with an Artifactory search followed by an Xray summary
type xrayGateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewXrayGateway creates a gateway for the JFrog platform at baseURL
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewXrayGateway(baseURL, token string, timeout time.Duration) *xrayGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &xrayGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies the backend in logs and metrics
func (g *xrayGateway) Name() string {
	return "xray"
}

// Lookup finds the main jar of the artifact and returns the licenses Xray reports for it
func (g *xrayGateway) Lookup(ctx context.Context, artifact entities.ArtifactCoordinate) ([]entities.LicenseEntry, error) {
	paths, err := g.repoPaths(ctx, artifact)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	return g.summary(ctx, paths)
}

// repoPaths returns "default/<repoKey>/<itemPath>" for each main jar of the artifact
func (g *xrayGateway) repoPaths(ctx context.Context, artifact entities.ArtifactCoordinate) ([]string, error) {
	query := url.Values{}
	query.Set("g", artifact.Group)
	query.Set("a", artifact.Artifact)
	query.Set("v", artifact.Version)
	query.Set("c", "*.jar")
	endpoint := g.baseURL + "/artifactory/api/search/gavc?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	g.authorize(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("artifactory search failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var search GAVCSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to parse artifactory search response: %w", err)
	}

	var paths []string
	for _, result := range search.Results {
		repoKey, itemPath, ok := splitStorageURI(result.URI)
		if !ok || isExcludedFile(path.Base(itemPath)) {
			continue
		}
		paths = append(paths, "default/"+repoKey+"/"+itemPath)
	}
	return paths, nil
}

func (g *xrayGateway) summary(ctx context.Context, paths []string) ([]entities.LicenseEntry, error) {
	body, err := json.Marshal(XraySummaryRequest{Paths: paths})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/xray/api/v1/summary/artifact", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	g.authorize(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xray summary request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var summary XraySummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to parse xray response: %w", err)
	}

	var licenses []entities.LicenseEntry
	for _, a := range summary.Artifacts {
		for _, l := range a.Licenses {
			if l.FullName == entities.UnknownLicense {
				continue
			}
			entry := entities.LicenseEntry{Name: l.FullName}
			if len(l.MoreInfoURL) > 0 {
				entry.URL = l.MoreInfoURL[0]
			}
			licenses = append(licenses, entry)
		}
	}
	return licenses, nil
}

func (g *xrayGateway) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.token)
}

// splitStorageURI turns ".../api/storage/<repoKey>/<itemPath>" into its parts
func splitStorageURI(uri string) (string, string, bool) {
	const marker = "/api/storage/"
	i := strings.Index(uri, marker)
	if i < 0 {
		return "", "", false
	}
	repoKey, itemPath, ok := strings.Cut(uri[i+len(marker):], "/")
	if !ok || repoKey == "" || itemPath == "" {
		return "", "", false
	}
	return repoKey, itemPath, true
}

func isExcludedFile(fileName string) bool {
	for _, c := range excludedClassifiers {
		if strings.Contains(fileName, c) {
			return true
		}
	}
	return false
}
