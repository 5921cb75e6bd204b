// Package main provides the thirdparty CLI for resolving and reconciling dependency licenses.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	zapadapter "github.com/ochairo/thirdparty/internal/external-adapters/zap"
)

var version = "dev"

// globalOptions are the flags shared by every subcommand
type globalOptions struct {
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "thirdparty",
		Short: "Resolve and reconcile the licenses of third-party dependencies",
		Long: `thirdparty - License resolution and reconciliation for third-party dependencies

Builds the license -> artifacts map of a project from its resolved dependencies,
looks up missing licenses remotely, applies overrides and the missing-license file,
and merges license aliases before writing a report.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")

	root.AddCommand(
		newReconcileCmd(opts),
		newCheckMergesCmd(opts),
		newMatchCmd(),
		newVerifyCmd(),
		newLookupCmd(),
	)
	return root
}

// newLogger builds the zap logger; flags win over the configured values
func (o *globalOptions) newLogger(level, format string) (*zapadapter.Logger, error) {
	if o.logLevel != "" {
		level = o.logLevel
	}
	if o.logFormat != "" {
		format = o.logFormat
	}
	return zapadapter.New(zapadapter.Config{Level: level, Format: format})
}
