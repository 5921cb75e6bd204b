package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ochairo/thirdparty/internal/config"
	"github.com/ochairo/thirdparty/internal/domain/services"
	"github.com/ochairo/thirdparty/internal/external-adapters/text"
)

type checkMergesOptions struct {
	configPath string
	files      []string
	merges     []string
}

func newCheckMergesCmd(global *globalOptions) *cobra.Command {
	opts := &checkMergesOptions{}

	cmd := &cobra.Command{
		Use:   "check-merges",
		Short: "Validate license merge lines without resolving anything",
		Long: `Validate "main|alias|alias..." merge lines.

Lines sharing a main license are combined. A line without a main license, or an
alias listed twice under the same or under another main license, is an error.`,
		Example: `  thirdparty check-merges --file license-merges.txt
  thirdparty check-merges --merge "Apache-2.0|The Apache Software License, Version 2.0"
  thirdparty check-merges --config thirdparty.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckMerges(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file providing merges and mergeFiles")
	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "Merge file, local path or registry location (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.merges, "merge", "m", nil, "Inline merge line (repeatable)")
	return cmd
}

func runCheckMerges(cmd *cobra.Command, global *globalOptions, opts *checkMergesOptions) error {
	ctx := cmd.Context()
	registry := config.RegistryConfig{}
	inline, files := opts.merges, opts.files

	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		registry = cfg.Registry
		inline = append(append([]string(nil), cfg.Merges...), inline...)
		files = append(append([]string(nil), cfg.MergeFiles...), files...)
	}
	if len(inline) == 0 && len(files) == 0 {
		return fmt.Errorf("no merges given: use --merge, --file or --config")
	}

	logger, err := global.newLogger("", "")
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(ctx, registry)
	if err != nil {
		return err
	}

	specs, err := text.NewMergeSpecSource(fetcher, inline, files...).LoadMergeSpecs(ctx)
	if err == nil {
		err = services.NewLicenseMerger(logger).Validate(specs)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "❌ %v\n", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ %d merge line(s) valid\n", len(specs))
	for _, spec := range specs {
		fmt.Fprintf(out, "  %s <- %s\n", spec.Main, strings.Join(spec.Aliases, ", "))
	}
	return nil
}
