package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/qdoc-dev/qdoc/internal/hooks"
	"github.com/qdoc-dev/qdoc/internal/output"
)

func newRpkgsCmd() *cobra.Command {
	var (
		jsonOutput bool
		watchMode  bool
		hookName   string
		noHooks    bool
	)

	cmd := &cobra.Command{
		Use:     "rpkgs [files...]",
		Short:   "Detect required R packages and maintain the manifest",
		Aliases: []string{"pkgs"},
		GroupID: GroupCore,
		Long: `Detect which R packages the workspace documents require and write
the package manifest at the workspace root.

Documents are the git-tracked files matching the configured suffix
(default .qmd), or the explicit paths given as arguments. Detection is a
heuristic text scan: no R code is executed.

When no document uses the R engine the manifest is removed instead.
When every document disables evaluation, only the weave packages are
written. Otherwise package references are extracted from load calls and
namespace usage, filtered against the base and recommended R
distributions, and written sorted one per line.

Configured hooks whose "on" list covers rpkgs (or watch, in watch
mode) run after each pass. Hook failures are warnings.`,
		Example: `  qdoc rpkgs                   # Scan tracked documents, write R.pkgs
  qdoc rpkgs report.qmd        # Scan only the given document
  qdoc rpkgs --json            # Machine-readable result
  qdoc rpkgs --watch           # Re-run whenever a document changes
  qdoc rpkgs --hook lockfile   # Run only the named hook afterwards`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, wcfg, err := workspaceConfig(ctx)
			if err != nil {
				return err
			}

			trigger := hooks.TriggerRpkgs
			if watchMode {
				trigger = hooks.TriggerWatch
			}
			// An unknown --hook name fails before any scanning happens
			matches, err := hooks.SelectHooks(wcfg.Hooks, hookName, noHooks, trigger)
			if err != nil {
				return err
			}

			if watchMode {
				return watchRpkgs(ctx, root, wcfg, args, matches)
			}

			res, err := runRpkgs(ctx, root, wcfg, args)
			if err != nil {
				return err
			}

			// Hooks fire after reporting; their output must not land
			// inside --json output
			if jsonOutput {
				out := output.FromContext(ctx)
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				reportRpkgs(ctx, res)
			}

			fireHooks(ctx, matches, root, res, trigger)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Watch documents and re-run on change")
	cmd.Flags().StringVar(&hookName, "hook", "", "Run only this hook after detection")
	cmd.Flags().BoolVar(&noHooks, "no-hooks", false, "Skip all hooks")
	cmd.MarkFlagsMutuallyExclusive("json", "watch")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hooks")

	return cmd
}
