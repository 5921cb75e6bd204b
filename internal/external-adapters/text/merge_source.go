// Package text reads line-oriented license merge files.
package text

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/gateways"
)

// MergeSpecSource implements repositories.MergeSpecSource.
// Inline lines from configuration come first, then every file in order.
type MergeSpecSource struct {
	inline    []string
	locations []string
	fetcher   gateways.ContentFetcher
}

// NewMergeSpecSource creates a merge source from inline lines and merge files
func NewMergeSpecSource(fetcher gateways.ContentFetcher, inline []string, locations ...string) *MergeSpecSource {
	return &MergeSpecSource{inline: inline, locations: locations, fetcher: fetcher}
}

// LoadMergeSpecs returns every merge line in source order. A missing file is an error
// since merges are only configured on purpose.
func (s *MergeSpecSource) LoadMergeSpecs(ctx context.Context) ([]entities.MergeSpec, error) {
	specs, err := entities.ParseMergeLines(s.inline)
	if err != nil {
		return nil, fmt.Errorf("invalid inline merge: %w", err)
	}
	for _, location := range s.locations {
		data, err := s.fetcher.Fetch(ctx, location)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("merge file %s does not exist: %w", location, err)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read merge file %s: %w", location, err)
		}

		lines, err := ReadLines(data)
		if err != nil {
			return nil, fmt.Errorf("failed to read merge file %s: %w", location, err)
		}
		fileSpecs, err := entities.ParseMergeLines(lines)
		if err != nil {
			return nil, fmt.Errorf("invalid merge file %s: %w", location, err)
		}
		specs = append(specs, fileSpecs...)
	}
	return specs, nil
}

// maxLineSize is the longest merge line ReadLines accepts
const maxLineSize = 4 << 20

// ReadLines splits data into lines, accepting \n and \r\n endings
func ReadLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
