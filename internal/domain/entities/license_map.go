package entities

import "sort"

// LicenseMap maps a license name to the set of artifacts distributed under it.
// License names iterate in ascending order and each set iterates by artifact key.
// An artifact may appear under several licenses. A LicenseMap is owned by a single
// run and is not safe for concurrent use.
type LicenseMap struct {
	licenses map[string]map[string]ArtifactCoordinate
}

// NewLicenseMap creates an empty license map
func NewLicenseMap() *LicenseMap {
	return &LicenseMap{licenses: make(map[string]map[string]ArtifactCoordinate)}
}

// Put adds an artifact to the set of license, creating the set when needed
func (m *LicenseMap) Put(license string, a ArtifactCoordinate) {
	set, ok := m.licenses[license]
	if !ok {
		set = make(map[string]ArtifactCoordinate)
		m.licenses[license] = set
	}
	set[a.Key()] = a
}

// PutAll adds every artifact to the set of license
func (m *LicenseMap) PutAll(license string, artifacts []ArtifactCoordinate) {
	for _, a := range artifacts {
		m.Put(license, a)
	}
}

// Has reports whether license is a key of the map, even with an empty set
func (m *LicenseMap) Has(license string) bool {
	_, ok := m.licenses[license]
	return ok
}

// Contains reports whether the artifact with key is listed under license
func (m *LicenseMap) Contains(license, key string) bool {
	_, ok := m.licenses[license][key]
	return ok
}

// Get returns a copy of the artifacts listed under license, ordered by key
func (m *LicenseMap) Get(license string) []ArtifactCoordinate {
	set := m.licenses[license]
	keys := sortedKeys(set)
	out := make([]ArtifactCoordinate, 0, len(keys))
	for _, k := range keys {
		out = append(out, set[k])
	}
	return out
}

// Size returns the number of artifacts listed under license
func (m *LicenseMap) Size(license string) int {
	return len(m.licenses[license])
}

// Remove deletes license and its whole set
func (m *LicenseMap) Remove(license string) {
	delete(m.licenses, license)
}

// RemoveFrom deletes one artifact from the set of license and reports whether it was there.
// The license key stays in the map even when its set becomes empty.
func (m *LicenseMap) RemoveFrom(license, key string) bool {
	set, ok := m.licenses[license]
	if !ok {
		return false
	}
	if _, ok := set[key]; !ok {
		return false
	}
	delete(set, key)
	return true
}

// RemoveArtifact deletes the artifact with key from every license set.
// Emptied sets are kept; call RemoveEmptyLicenses to drop them.
func (m *LicenseMap) RemoveArtifact(key string) {
	for _, set := range m.licenses {
		delete(set, key)
	}
}

// RemoveEmptyLicenses drops every license whose set is empty
func (m *LicenseMap) RemoveEmptyLicenses() {
	for name, set := range m.licenses {
		if len(set) == 0 {
			delete(m.licenses, name)
		}
	}
}

// Names returns the license names in ascending order
func (m *LicenseMap) Names() []string {
	names := make([]string, 0, len(m.licenses))
	for name := range m.licenses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of licenses in the map
func (m *LicenseMap) Len() int {
	return len(m.licenses)
}

// LicensesOf returns the licenses the artifact with key is listed under, in ascending order
func (m *LicenseMap) LicensesOf(key string) []string {
	var names []string
	for _, name := range m.Names() {
		if _, ok := m.licenses[name][key]; ok {
			names = append(names, name)
		}
	}
	return names
}

// DependencyMap inverts the map: artifact key to the licenses it is listed under
func (m *LicenseMap) DependencyMap() map[string][]string {
	out := make(map[string][]string)
	for _, name := range m.Names() {
		for _, k := range sortedKeys(m.licenses[name]) {
			out[k] = append(out[k], name)
		}
	}
	return out
}

// Snapshot returns license name to sorted artifact keys, including empty sets
func (m *LicenseMap) Snapshot() map[string][]string {
	out := make(map[string][]string, len(m.licenses))
	for name, set := range m.licenses {
		out[name] = sortedKeys(set)
	}
	return out
}

// Clone returns a deep copy of the map
func (m *LicenseMap) Clone() *LicenseMap {
	c := NewLicenseMap()
	for name, set := range m.licenses {
		cp := make(map[string]ArtifactCoordinate, len(set))
		for k, a := range set {
			cp[k] = a
		}
		c.licenses[name] = cp
	}
	return c
}

func sortedKeys(set map[string]ArtifactCoordinate) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
