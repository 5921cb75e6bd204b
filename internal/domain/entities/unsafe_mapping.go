package entities

import "sort"

// UnsafeMapping is the persisted artifact key to license value table.
// A value is a "|"-joined list of license names; an empty value marks an
// artifact that still needs a license filled in by hand.
type UnsafeMapping struct {
	entries map[string]string
}

// NewUnsafeMapping creates an empty mapping
func NewUnsafeMapping() *UnsafeMapping {
	return &UnsafeMapping{entries: make(map[string]string)}
}

// UnsafeMappingFrom builds a mapping from plain key/value pairs
func UnsafeMappingFrom(entries map[string]string) *UnsafeMapping {
	m := NewUnsafeMapping()
	for k, v := range entries {
		m.entries[k] = v
	}
	return m
}

// Set stores value under key, replacing the previous value
func (m *UnsafeMapping) Set(key, value string) {
	m.entries[key] = value
}

// Get returns the raw value stored under key
func (m *UnsafeMapping) Get(key string) (string, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Delete removes key
func (m *UnsafeMapping) Delete(key string) {
	delete(m.entries, key)
}

// Len returns the number of entries
func (m *UnsafeMapping) Len() int {
	return len(m.entries)
}

// Keys returns the keys in ascending order
func (m *UnsafeMapping) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Licenses returns the license names stored under key
func (m *UnsafeMapping) Licenses(key string) []string {
	return SplitLicenses(m.entries[key])
}

// Entries returns a copy of the key/value pairs
func (m *UnsafeMapping) Entries() map[string]string {
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}
