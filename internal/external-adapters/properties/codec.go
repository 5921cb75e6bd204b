// Package properties reads and writes the key=value license files (overrides,
// missing licenses, license databases) in Java properties syntax.
package properties

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/magiconair/properties"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

// Decode parses properties text into key/value pairs.
// ${...} references are kept literally since license names are not templates.
func Decode(data []byte) (map[string]string, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedMapping, err)
	}
	return p.Map(), nil
}

// Encode writes the pairs sorted by key, preceded by an optional comment header
func Encode(entries map[string]string, header string) ([]byte, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, k := range keys {
		if _, _, err := p.Set(k, entries[k]); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", k, err)
		}
	}

	var buf bytes.Buffer
	if header != "" {
		buf.WriteString("# " + header + "\n")
	}
	if _, err := p.Write(&buf, properties.UTF8); err != nil {
		return nil, fmt.Errorf("failed to encode properties: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseOverrides turns override properties into records ordered by key.
// Keys that are not group--artifact--versionRange are returned as rejected entries.
func ParseOverrides(data []byte) (entities.OverrideSet, error) {
	entries, err := Decode(data)
	if err != nil {
		return entities.OverrideSet{}, err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var set entities.OverrideSet
	for _, k := range keys {
		selector, err := entities.ParseSelector(k)
		if err != nil {
			set.Rejected = append(set.Rejected, entities.RejectedEntry{Key: k, Reason: err.Error()})
			continue
		}
		set.Records = append(set.Records, entities.OverrideRecord{
			Selector: selector,
			Licenses: entities.SplitLicenses(entries[k]),
		})
	}
	return set, nil
}
