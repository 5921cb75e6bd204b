// Package gateways provides adapter implementations for external services and tools.
package gateways

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ochairo/thirdparty/internal/domain/interfaces/gateways"
)

// RegistryScheme prefixes locations relative to the license registry base URL
const RegistryScheme = "registry:"

const maxLicenseFileSize = 10 * 1024 * 1024

// RegistryClient implements gateways.ContentFetcher for local files and license registry downloads.
// Remote files can be pinned by digest and checked against a detached ".asc" signature.
type RegistryClient struct {
	baseURL    string
	httpClient *http.Client
	checksums  *checksumVerifier
	digests    map[string]string
	verifier   gateways.SignatureVerifier
}

// RegistryOption configures a RegistryClient
type RegistryOption func(*RegistryClient)

// WithDigests pins locations to SHA-256 digests
func WithDigests(digests map[string]string) RegistryOption {
	return func(c *RegistryClient) {
		c.digests = digests
	}
}

// WithSignatureVerifier requires a valid detached signature for every remote file
func WithSignatureVerifier(v gateways.SignatureVerifier) RegistryOption {
	return func(c *RegistryClient) {
		c.verifier = v
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) RegistryOption {
	return func(c *RegistryClient) {
		c.httpClient = client
	}
}

// NewRegistryClient creates a client; baseURL may be empty when no registry: locations are used
func NewRegistryClient(baseURL string, opts ...RegistryOption) *RegistryClient {
	c := &RegistryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		checksums: NewChecksumVerifier(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch reads a location. A missing local file or a remote 404 wraps fs.ErrNotExist.
func (c *RegistryClient) Fetch(ctx context.Context, location string) ([]byte, error) {
	url, remote, err := c.resolve(location)
	if err != nil {
		return nil, err
	}

	var data []byte
	if remote {
		data, err = c.download(ctx, url)
	} else {
		//nolint:gosec // G304: location is a license data path from configuration
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, err
	}

	if digest, ok := c.digests[location]; ok {
		if err := c.checksums.VerifyDigest(data, digest); err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
	}

	if remote && c.verifier != nil {
		sig, err := c.download(ctx, url+".asc")
		if err != nil {
			return nil, fmt.Errorf("failed to download signature of %s: %w", location, err)
		}
		if err := c.verifier.VerifyDetached(data, sig); err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
	}
	return data, nil
}

func (c *RegistryClient) resolve(location string) (string, bool, error) {
	switch {
	case strings.HasPrefix(location, RegistryScheme):
		if c.baseURL == "" {
			return "", false, fmt.Errorf("location %s needs a license registry url", location)
		}
		return c.baseURL + "/" + strings.TrimLeft(strings.TrimPrefix(location, RegistryScheme), "/"), true, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return location, true, nil
	default:
		return location, false, nil
	}
}

func (c *RegistryClient) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "thirdparty/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, fs.ErrNotExist)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLicenseFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}
