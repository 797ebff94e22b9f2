package main

import (
	"github.com/spf13/cobra"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check workspace health and repair what it can",
		GroupID: GroupWorkspace,
		Args:    cobra.NoArgs,
		Long: `Check the workspace for problems.

Doctor verifies three things: that the global and local config files
parse, that every tracked document is readable with valid front
matter, and that the package manifest matches what detection would
produce for the current document set.

Manifest drift is repairable with --fix. Config and document problems
are reported for manual attention.`,
		Example: `  qdoc doctor        # Report problems
  qdoc doctor --fix  # Repair manifest drift`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			// A broken local config is a finding here, not a startup error.
			root, err := resolveRoot(ctx, cfg)
			if err != nil {
				return err
			}
			return doctor.Run(ctx, root, cfg, fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair fixable issues")

	return cmd
}
