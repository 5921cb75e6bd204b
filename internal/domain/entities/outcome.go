package entities

// OverrideOutcome summarizes one override pass
type OverrideOutcome struct {
	// Reassigned lists the keys of artifacts whose licenses were replaced
	Reassigned []string
	// Unmatched lists selectors that matched no cached artifact
	Unmatched []string
	// Rejected lists entries skipped for a malformed selector or range
	Rejected []RejectedEntry
	// Empty lists selectors with no license value
	Empty []string
}

// Migration records a legacy missing-license key rewritten to the current format
type Migration struct {
	From string
	To   string
}

// UnsafeOutcome summarizes one missing-license reconciliation
type UnsafeOutcome struct {
	Migrated []Migration
	// Stale lists persisted keys whose artifact is not part of this run
	Stale []string
	// Resolved lists artifact keys that got a license from the mapping or a descriptor
	Resolved []string
	// Residual lists artifact keys that still have no license
	Residual []string
}

// MergeOutcome summarizes one merge pass
type MergeOutcome struct {
	// Folded lists the aliases that were found and merged
	Folded []string
	// Missing lists the aliases absent from the map
	Missing []string
}

// LookupOutcome summarizes one lookup pass
type LookupOutcome struct {
	// Resolved counts artifacts resolved per backend name
	Resolved map[string]int
	Failures int
}
