package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ochairo/thirdparty/internal/config"
	orchestrators "github.com/ochairo/thirdparty/internal/domain-orchestrators"
	"github.com/ochairo/thirdparty/internal/domain/interfaces"
	"github.com/ochairo/thirdparty/internal/domain/services"
	propsadapter "github.com/ochairo/thirdparty/internal/external-adapters/properties"
	"github.com/ochairo/thirdparty/internal/external-adapters/text"
	yamladapter "github.com/ochairo/thirdparty/internal/external-adapters/yaml"
)

type reconcileOptions struct {
	configPath    string
	reportPath    string
	reportFormat  string
	metricsFile   string
	failOnUnknown bool
	noLookup      bool
}

func newReconcileCmd(global *globalOptions) *cobra.Command {
	opts := &reconcileOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Resolve the licenses of all dependencies and update the missing-license file",
		Long: `Run the whole pipeline: declared licenses, remote lookup, overrides,
missing-license file and license databases, then license merges.

The missing-license file is rewritten with every artifact still without license,
with an empty value to fill in by hand.`,
		Example: `  # Run with the default configuration file
  thirdparty reconcile

  # Write a JSON report and fail when a license is still unknown
  thirdparty reconcile --config thirdparty.toml --report THIRD-PARTY.json --report-format json --fail-on-unknown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "thirdparty.yml", "Configuration file (.yml, .yaml or .toml)")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Report file (overrides report.path)")
	cmd.Flags().StringVar(&opts.reportFormat, "report-format", "", "Report format: yaml or json (overrides report.format)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Prometheus textfile (overrides metricsFile)")
	cmd.Flags().BoolVar(&opts.failOnUnknown, "fail-on-unknown", false, "Fail when an artifact has no license")
	cmd.Flags().BoolVar(&opts.noLookup, "no-lookup", false, "Skip remote license lookup")
	return cmd
}

func runReconcile(cmd *cobra.Command, global *globalOptions, opts *reconcileOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)

	runID := uuid.NewString()
	base, err := global.newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	//nolint:errcheck // Sync fails on terminals
	defer base.Sync()
	logger := base.With(interfaces.F("run_id", runID))

	ctx := cmd.Context()
	fetcher, err := newFetcher(ctx, cfg.Registry)
	if err != nil {
		return err
	}

	assigner := services.NewLicenseAssigner(logger)
	svc := orchestrators.ReconcileServices{
		Assigner:  assigner,
		Overrides: services.NewOverrideResolver(assigner, logger),
		Unsafe:    services.NewUnsafeMappingResolver(assigner, logger),
		Merger:    services.NewLicenseMerger(logger),
	}
	if backends := newLookupBackends(cfg.Lookup); len(backends) > 0 && !opts.noLookup {
		svc.Lookup = services.NewLookupService(assigner, logger, backends...)
	}

	sources := orchestrators.ReconcileSources{
		Dependencies: yamladapter.NewDependencySource(cfg.Dependencies...),
	}
	if len(cfg.Overrides) > 0 {
		sources.Overrides = propsadapter.NewOverrideSource(fetcher, logger, cfg.Overrides...)
	}
	if cfg.MissingFile != "" {
		sources.MissingFile = propsadapter.NewMappingStore(cfg.MissingFile)
	}
	if len(cfg.LicenseDatabases) > 0 {
		sources.Descriptors = propsadapter.NewDescriptorSource(fetcher, cfg.LicenseDatabases...)
	}
	if len(cfg.Merges) > 0 || len(cfg.MergeFiles) > 0 {
		sources.Merges = text.NewMergeSpecSource(fetcher, cfg.Merges, cfg.MergeFiles...)
	}

	metrics := orchestrators.NewMetrics()
	orch := orchestrators.NewReconcileOrchestrator(sources, svc, metrics, logger,
		orchestrators.ReconcileOrchestratorConfig{RunID: runID, FailOnUnknown: cfg.FailOnUnknown})

	result, runErr := orch.Reconcile(ctx)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteToTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("Could not write metrics", interfaces.F("path", cfg.MetricsFile), interfaces.F("error", err.Error()))
		}
	}
	if runErr != nil {
		logger.Error("Reconciliation failed", interfaces.F("error", runErr.Error()))
		return runErr
	}

	if cfg.Report.Path != "" {
		report := yamladapter.NewReport(result.RunID, result.LicenseMap, time.Now().UTC())
		if err := report.WriteFile(cfg.Report.Path, cfg.Report.Format); err != nil {
			return err
		}
		logger.Info("Report written", interfaces.F("path", cfg.Report.Path))
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.GetReconcileSummary())
	return nil
}

// apply lets explicitly set flags win over the configuration file
func (o *reconcileOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if o.reportPath != "" {
		cfg.Report.Path = o.reportPath
	}
	if o.reportFormat != "" {
		cfg.Report.Format = o.reportFormat
	}
	if o.metricsFile != "" {
		cfg.MetricsFile = o.metricsFile
	}
	if cmd.Flags().Changed("fail-on-unknown") {
		cfg.FailOnUnknown = o.failOnUnknown
	}
}
