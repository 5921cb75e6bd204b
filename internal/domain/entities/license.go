package entities

import "strings"

// UnknownLicense is the license key of artifacts with no resolved license
const UnknownLicense = "Unknown"

// LicenseSeparator joins several license names in override and mapping files
const LicenseSeparator = "|"

// LicenseEntry is a single license declaration as found in a POM or returned by a lookup service
type LicenseEntry struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// SplitLicenses splits a "|"-joined value into trimmed license names, dropping empty parts
func SplitLicenses(value string) []string {
	var names []string
	for _, part := range strings.Split(value, LicenseSeparator) {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// JoinLicenses is the inverse of SplitLicenses
func JoinLicenses(names []string) string {
	return strings.Join(names, LicenseSeparator)
}
