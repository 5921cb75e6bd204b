// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/thirdparty/internal/domain/entities"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/repositories"
	"github.com/ochairo/thirdparty/internal/domain/interfaces/services"
)

// ErrUnresolvedLicenses is returned when a run configured to fail on unknown licenses leaves some
var ErrUnresolvedLicenses = errors.New("artifacts without license")

// ReconcileSources are the data sources of a run. Only Dependencies is required.
type ReconcileSources struct {
	Dependencies repositories.DependencySource
	Overrides    repositories.OverrideSource
	MissingFile  repositories.UnsafeMappingStore
	Descriptors  repositories.DescriptorSource
	Merges       repositories.MergeSpecSource
}

// ReconcileServices are the domain services of a run. Lookup is optional.
type ReconcileServices struct {
	Assigner  services.LicenseAssigner
	Overrides services.OverrideResolver
	Unsafe    services.UnsafeMappingResolver
	Merger    services.LicenseMerger
	Lookup    services.LookupService
}

// ReconcileOrchestratorConfig holds configuration for the orchestrator
type ReconcileOrchestratorConfig struct {
	// RunID tags the run; a random one is generated when empty
	RunID         string
	FailOnUnknown bool
}

// ReconcileOrchestrator runs the license resolution pipeline
type ReconcileOrchestrator struct {
	sources  ReconcileSources
	services ReconcileServices
	metrics  *Metrics
	logger   interfaces.Logger
	config   ReconcileOrchestratorConfig
}

// NewReconcileOrchestrator creates a new reconcile orchestrator
func NewReconcileOrchestrator(
	sources ReconcileSources,
	svc ReconcileServices,
	metrics *Metrics,
	logger interfaces.Logger,
	config ReconcileOrchestratorConfig,
) *ReconcileOrchestrator {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ReconcileOrchestrator{
		sources:  sources,
		services: svc,
		metrics:  metrics,
		logger:   logger,
		config:   config,
	}
}

// ReconcileResult contains the result of a reconciliation run
type ReconcileResult struct {
	RunID      string
	LicenseMap *entities.LicenseMap
	Cache      *entities.ArtifactCache

	Lookup             entities.LookupOutcome
	Overrides          entities.OverrideOutcome
	Unsafe             entities.UnsafeOutcome
	DescriptorResolved []string
	Merges             entities.MergeOutcome
	// Unresolved lists the keys still under Unknown at the end of the run
	Unresolved []string

	LoadDuration    time.Duration
	ResolveDuration time.Duration
	TotalDuration   time.Duration
	Success         bool
	Error           error
}

// Reconcile executes the complete workflow:
// merge validation, assignment, lookup, overrides, missing file and merge.
func (o *ReconcileOrchestrator) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	startTime := time.Now()
	result := &ReconcileResult{RunID: o.config.RunID}
	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}
	fail := func(err error) (*ReconcileResult, error) {
		result.Error = err
		result.TotalDuration = time.Since(startTime)
		return result, err
	}

	// Step 1: Load and validate merges before anything is mutated
	loadStart := time.Now()
	var merges []entities.MergeSpec
	if o.sources.Merges != nil {
		specs, err := o.sources.Merges.LoadMergeSpecs(ctx)
		if err != nil {
			return fail(fmt.Errorf("failed to load merges: %w", err))
		}
		if err := o.services.Merger.Validate(specs); err != nil {
			return fail(fmt.Errorf("invalid merges: %w", err))
		}
		merges = specs
	}

	// Step 2: Load dependencies
	deps, err := o.sources.Dependencies.LoadDependencies(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to load dependencies: %w", err))
	}
	result.LoadDuration = time.Since(loadStart)

	// Step 3: Record declared licenses
	resolveStart := time.Now()
	stageStart := time.Now()
	licenseMap := entities.NewLicenseMap()
	cache := entities.NewArtifactCache()
	for _, dep := range deps {
		if dep.Artifact.Scope == entities.ScopeSystem {
			o.logger.Debug("Skipping system scope artifact", interfaces.F("artifact", dep.Artifact.Key()))
			continue
		}
		cache.Put(dep.Artifact)
		o.services.Assigner.Assign(licenseMap, dep.Artifact, dep.Licenses)
	}
	result.LicenseMap = licenseMap
	result.Cache = cache
	o.metrics.artifacts.Set(float64(cache.Len()))
	o.endStage(StageAssign, licenseMap, stageStart)

	// Step 4: Ask remote backends about Unknown artifacts
	if o.services.Lookup != nil && licenseMap.Has(entities.UnknownLicense) {
		stageStart = time.Now()
		outcome, err := o.services.Lookup.Resolve(ctx, licenseMap)
		result.Lookup = outcome
		o.metrics.recordLookup(outcome)
		if err != nil {
			return fail(fmt.Errorf("license lookup failed: %w", err))
		}
		o.endStage(StageLookup, licenseMap, stageStart)
	}

	// Step 5: Apply overrides
	if o.sources.Overrides != nil {
		stageStart = time.Now()
		overrides, err := o.sources.Overrides.LoadOverrides(ctx)
		if err != nil {
			return fail(fmt.Errorf("failed to load overrides: %w", err))
		}
		result.Overrides = o.services.Overrides.Override(licenseMap, cache, overrides)
		o.metrics.recordOverrides(result.Overrides)
		o.endStage(StageOverride, licenseMap, stageStart)
	}

	// Step 6: Reconcile with the missing-license file and license databases
	stageStart = time.Now()
	if err := o.reconcileMissing(ctx, result); err != nil {
		return fail(err)
	}
	o.endStage(StageUnsafe, licenseMap, stageStart)

	// Step 7: Merge aliases
	if len(merges) > 0 {
		stageStart = time.Now()
		outcome, err := o.services.Merger.Merge(licenseMap, merges)
		if err != nil {
			return fail(fmt.Errorf("failed to merge licenses: %w", err))
		}
		result.Merges = outcome
		o.metrics.recordMerges(outcome)
		o.endStage(StageMerge, licenseMap, stageStart)
	}

	for _, artifact := range licenseMap.Get(entities.UnknownLicense) {
		result.Unresolved = append(result.Unresolved, artifact.Key())
	}
	o.metrics.licenses.Set(float64(licenseMap.Len()))
	result.ResolveDuration = time.Since(resolveStart)

	if o.config.FailOnUnknown && len(result.Unresolved) > 0 {
		return fail(fmt.Errorf("%w: %s", ErrUnresolvedLicenses, strings.Join(result.Unresolved, ", ")))
	}

	o.logger.Info("Reconciliation complete",
		interfaces.F("run_id", result.RunID),
		interfaces.F("artifacts", cache.Len()),
		interfaces.F("licenses", licenseMap.Len()),
		interfaces.F("unresolved", len(result.Unresolved)))

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

func (o *ReconcileOrchestrator) reconcileMissing(ctx context.Context, result *ReconcileResult) error {
	mapping := entities.NewUnsafeMapping()
	if o.sources.MissingFile != nil {
		loaded, err := o.sources.MissingFile.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load missing-license file: %w", err)
		}
		mapping = loaded
	}

	result.Unsafe = o.services.Unsafe.Reconcile(result.LicenseMap, result.Cache, mapping)

	if o.sources.Descriptors != nil {
		descriptors, err := o.sources.Descriptors.LoadDescriptors(ctx)
		if err != nil {
			return fmt.Errorf("failed to load license databases: %w", err)
		}
		for _, descriptor := range descriptors {
			resolved := o.services.Unsafe.ApplyDescriptor(result.LicenseMap, mapping, descriptor)
			result.DescriptorResolved = append(result.DescriptorResolved, resolved...)
		}
	}
	o.metrics.recordUnsafe(result.Unsafe, len(result.DescriptorResolved))

	if o.sources.MissingFile != nil {
		if err := o.sources.MissingFile.Save(ctx, mapping); err != nil {
			return fmt.Errorf("failed to save missing-license file: %w", err)
		}
	}
	return nil
}

func (o *ReconcileOrchestrator) endStage(stage string, licenseMap *entities.LicenseMap, start time.Time) {
	elapsed := time.Since(start)
	o.metrics.observeStage(stage, licenseMap, elapsed.Seconds())
	o.logger.Debug("Stage complete",
		interfaces.F("stage", stage),
		interfaces.F("unknown", licenseMap.Size(entities.UnknownLicense)),
		interfaces.F("duration", elapsed.String()))
}

// Metrics returns the metrics recorded by the orchestrator
func (o *ReconcileOrchestrator) Metrics() *Metrics {
	return o.metrics
}

// GetReconcileSummary returns a human-readable summary of the run
func (r *ReconcileResult) GetReconcileSummary() string {
	if !r.Success {
		return fmt.Sprintf("Reconciliation failed: %v", r.Error)
	}

	summary := fmt.Sprintf(`Reconciliation successful!
Run: %s
Artifacts: %d
Licenses: %d
Overrides: %d reassigned, %d unmatched, %d rejected
Merged aliases: %d
Load: %v
Resolve: %v
Total: %v`,
		r.RunID,
		r.Cache.Len(),
		r.LicenseMap.Len(),
		len(r.Overrides.Reassigned),
		len(r.Overrides.Unmatched),
		len(r.Overrides.Rejected),
		len(r.Merges.Folded),
		r.LoadDuration,
		r.ResolveDuration,
		r.TotalDuration,
	)

	if len(r.Unresolved) > 0 {
		summary += fmt.Sprintf("\n\nWithout license (%d): %s", len(r.Unresolved), strings.Join(r.Unresolved, ", "))
	}
	return summary
}
