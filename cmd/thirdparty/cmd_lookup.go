package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ochairo/thirdparty/internal/config"
	"github.com/ochairo/thirdparty/internal/domain-adapters/gateways"
	"github.com/ochairo/thirdparty/internal/domain/entities"
)

type lookupOptions struct {
	backends       []string
	depsDevURL     string
	xrayURL        string
	xrayToken      string
	timeoutSeconds int
}

func newLookupCmd() *cobra.Command {
	opts := &lookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup <group:artifact:version>...",
		Short: "Ask the remote backends for the licenses of artifacts",
		Long: `Query the lookup backends used by reconcile for artifacts without declared license.
Backends are asked in order; the first one that knows the artifact answers.

The Xray url and token default to $` + config.EnvXrayURL + ` and $` + config.EnvXrayToken + `.`,
		Example: `  thirdparty lookup com.google.guava:guava:32.1.2-jre
  thirdparty lookup --backend xray --backend depsdev org.example:lib:1.0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.backends, "backend", []string{config.BackendDepsDev}, "Lookup backend: depsdev or xray (repeatable)")
	cmd.Flags().StringVar(&opts.depsDevURL, "depsdev-url", "", "deps.dev API base URL")
	cmd.Flags().StringVar(&opts.xrayURL, "xray-url", "", "Artifactory/Xray base URL")
	cmd.Flags().StringVar(&opts.xrayToken, "xray-token", "", "Artifactory/Xray access token")
	cmd.Flags().IntVar(&opts.timeoutSeconds, "timeout", 30, "Request timeout in seconds")
	return cmd
}

func runLookup(cmd *cobra.Command, args []string, opts *lookupOptions) error {
	artifacts := make([]entities.ArtifactCoordinate, 0, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return fmt.Errorf("invalid artifact %q, expected group:artifact:version", arg)
		}
		artifacts = append(artifacts, entities.ArtifactCoordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]})
	}

	lookupCfg := config.LookupConfig{
		Backends:       opts.backends,
		TimeoutSeconds: opts.timeoutSeconds,
		DepsDev:        config.DepsDevConfig{URL: opts.depsDevURL},
		Xray: config.XrayConfig{
			URL:   firstNonEmpty(opts.xrayURL, os.Getenv(config.EnvXrayURL)),
			Token: firstNonEmpty(opts.xrayToken, os.Getenv(config.EnvXrayToken)),
		},
	}
	if err := lookupCfg.Validate(); err != nil {
		return err
	}

	lookup := gateways.NewCompositeLookupGateway(newLookupBackends(lookupCfg)...)
	out := cmd.OutOrStdout()
	for _, artifact := range artifacts {
		licenses, err := lookup.Lookup(cmd.Context(), artifact)
		if err != nil {
			fmt.Fprintf(out, "❌ %s: %v\n", artifact, err)
			continue
		}
		if len(licenses) == 0 {
			fmt.Fprintf(out, "❓ %s: no license known\n", artifact)
			continue
		}
		fmt.Fprintf(out, "✅ %s\n", artifact)
		for _, license := range licenses {
			if license.URL != "" {
				fmt.Fprintf(out, "  %s (%s)\n", license.Name, license.URL)
			} else {
				fmt.Fprintf(out, "  %s\n", license.Name)
			}
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
