package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/thirdparty/internal/domain/versionrange"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <range> <version>...",
		Short: "Check versions against an override version range",
		Long: `Evaluate a version range the way override selectors do.

A bare version means an exact match; "[1.0,2.0)", "(,1.5]" and unions such as
"[1.0],[1.2,)" are supported.`,
		Example: `  thirdparty match "[1.0,2.0)" 1.0 1.5-SNAPSHOT 2.0`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := versionrange.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Range %s\n", r)
			for _, version := range args[1:] {
				if r.Contains(version) {
					fmt.Fprintf(out, "  ✅ %s matches\n", version)
				} else {
					fmt.Fprintf(out, "  ❌ %s does not match\n", version)
				}
			}
			return nil
		},
	}
}
