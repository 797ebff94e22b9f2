package main

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/qdoc-dev/qdoc/internal/hooks"
)

func newHookCmd() *cobra.Command {
	var (
		hookArgs []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:     "hook <name>...",
		Short:   "Run configured hooks by name",
		Aliases: []string{"h"},
		GroupID: GroupWorkspace,
		Args:    cobra.MinimumNArgs(1),
		Long: `Run one or more hooks from the [hooks] config sections.

Explicit invocation ignores each hook's "on" list, so hooks without
triggers work as named workspace scripts. Hooks run from the workspace
root in the order given, and the first failure stops the run.

Custom variables are passed with -a key=value and referenced in the
hook command as {key}, {key:raw} or {key:-default}. A value of "-"
reads the variable from piped stdin.`,
		Example: `  qdoc hook lockfile           # Run a single hook
  qdoc hook lockfile commit    # Run several in order
  qdoc hook deploy -a env=prod # Pass a custom variable
  qdoc hook deploy --dry-run   # Show commands without running`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, wcfg, err := workspaceConfig(ctx)
			if err != nil {
				return err
			}

			var missing []string
			for _, name := range args {
				if _, ok := wcfg.Hooks[name]; !ok {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				available := slices.Sorted(maps.Keys(wcfg.Hooks))
				if len(available) == 0 {
					return fmt.Errorf("unknown hook(s) %v (no hooks configured)", missing)
				}
				return fmt.Errorf("unknown hook(s) %v (available: %v)", missing, available)
			}

			env, err := hooks.ParseEnvWithStdin(hookArgs)
			if err != nil {
				return err
			}

			hctx := hooks.Context{
				Root:     root,
				Manifest: filepath.Join(root, wcfg.Manifest),
				Trigger:  string(hooks.TriggerRun),
				Env:      env,
				DryRun:   dryRun,
			}

			for _, name := range args {
				hook := wcfg.Hooks[name]
				if err := hooks.RunSingle(ctx, name, &hook, hctx); err != nil {
					return fmt.Errorf("hook %q failed: %w", name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&hookArgs, "arg", "a", nil, "Custom variable as key=value (repeatable)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Print commands without executing them")

	return cmd
}
