package orchestrators

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ochairo/thirdparty/internal/domain/entities"
)

const metricsNamespace = "thirdparty"

// Pipeline stage labels
const (
	StageAssign   = "assign"
	StageLookup   = "lookup"
	StageOverride = "override"
	StageUnsafe   = "unsafe"
	StageMerge    = "merge"
)

// Metrics holds the counters of one reconciliation run on its own registry
type Metrics struct {
	registry *prometheus.Registry

	artifacts     prometheus.Gauge
	licenses      prometheus.Gauge
	unknown       *prometheus.GaugeVec
	stageDuration *prometheus.GaugeVec
	overrides     *prometheus.CounterVec
	unsafe        *prometheus.CounterVec
	merges        *prometheus.CounterVec
	lookups       *prometheus.CounterVec
}

// NewMetrics registers the run metrics on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		artifacts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "artifacts",
			Help:      "Artifacts taken into account by the run",
		}),
		licenses: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "licenses",
			Help:      "Distinct license names after the run",
		}),
		unknown: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "unknown_artifacts",
			Help:      "Artifacts without a license after each stage",
		}, []string{"stage"}),
		stageDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each stage",
		}, []string{"stage"}),
		overrides: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "override",
			Name:      "records_total",
			Help:      "Override records by result",
		}, []string{"result"}),
		unsafe: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "missing_file",
			Name:      "entries_total",
			Help:      "Missing-license file entries by result",
		}, []string{"result"}),
		merges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "merge",
			Name:      "aliases_total",
			Help:      "License aliases by result",
		}, []string{"result"}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "lookup",
			Name:      "resolved_total",
			Help:      "Artifacts resolved by each lookup backend",
		}, []string{"backend"}),
	}
}

// Registry exposes the run registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes the metrics in the node exporter textfile format
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func (m *Metrics) observeStage(stage string, licenseMap *entities.LicenseMap, seconds float64) {
	m.unknown.WithLabelValues(stage).Set(float64(licenseMap.Size(entities.UnknownLicense)))
	m.stageDuration.WithLabelValues(stage).Set(seconds)
}

func (m *Metrics) recordLookup(outcome entities.LookupOutcome) {
	for backend, n := range outcome.Resolved {
		m.lookups.WithLabelValues(backend).Add(float64(n))
	}
	m.lookups.WithLabelValues("failed").Add(float64(outcome.Failures))
}

func (m *Metrics) recordOverrides(outcome entities.OverrideOutcome) {
	m.overrides.WithLabelValues("reassigned").Add(float64(len(outcome.Reassigned)))
	m.overrides.WithLabelValues("unmatched").Add(float64(len(outcome.Unmatched)))
	m.overrides.WithLabelValues("rejected").Add(float64(len(outcome.Rejected)))
	m.overrides.WithLabelValues("empty").Add(float64(len(outcome.Empty)))
}

func (m *Metrics) recordUnsafe(outcome entities.UnsafeOutcome, descriptorResolved int) {
	m.unsafe.WithLabelValues("migrated").Add(float64(len(outcome.Migrated)))
	m.unsafe.WithLabelValues("stale").Add(float64(len(outcome.Stale)))
	m.unsafe.WithLabelValues("resolved").Add(float64(len(outcome.Resolved)))
	m.unsafe.WithLabelValues("descriptor").Add(float64(descriptorResolved))
	m.unsafe.WithLabelValues("residual").Add(float64(len(outcome.Residual)))
}

func (m *Metrics) recordMerges(outcome entities.MergeOutcome) {
	m.merges.WithLabelValues("folded").Add(float64(len(outcome.Folded)))
	m.merges.WithLabelValues("missing").Add(float64(len(outcome.Missing)))
}
