package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/log"
	"github.com/qdoc-dev/qdoc/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage qdoc configuration.

Global config: ~/.config/qdoc/config.toml
Local config:  .qdoc.toml (at the workspace root)`,
		Example: `  qdoc config init          # Create default global config
  qdoc config init --local  # Create per-workspace config
  qdoc config path          # Print global config path
  qdoc config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates global config at ~/.config/qdoc/config.toml.
With --local, creates per-workspace config at .qdoc.toml in the
resolved workspace root.`,
		Example: `  qdoc config init           # Create global config
  qdoc config init --local   # Create workspace config
  qdoc config init -f        # Overwrite existing config
  qdoc config init -s        # Print config template to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if stdout {
				if local {
					out.Print(config.DefaultLocalConfig())
				} else {
					out.Print(config.DefaultConfig())
				}
				return nil
			}

			if local {
				root, err := resolveRoot(ctx, config.FromContext(ctx))
				if err != nil {
					return err
				}
				path, err := config.InitLocal(root, force)
				if err != nil {
					return err
				}
				out.Printf("Created local config: %s\n", path)
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config template to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-workspace .qdoc.toml instead of global config")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print global config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Values overridden by the workspace .qdoc.toml are annotated with
(local).`,
		Example: `  qdoc config show             # Show merged config
  qdoc config show --json      # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, err := resolveRoot(ctx, cfg)
			if err != nil {
				return err
			}

			local, err := config.LoadLocal(root)
			if err != nil {
				l.Printf("Warning: %v (using global config)\n", err)
			}
			eff := config.MergeLocal(cfg, local)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(eff)
			}

			globalPath, err := config.Path()
			if err != nil {
				globalPath = "(unknown)"
			}
			out.Printf("Global config: %s\n", globalPath)
			if local != nil {
				out.Printf("Local config:  %s\n", filepath.Join(root, config.LocalConfigFileName))
			} else {
				out.Printf("Local config:  (none)\n")
			}
			out.Println()

			source := func(isLocal bool) string {
				if isLocal {
					return " (local)"
				}
				return ""
			}

			rootValue := eff.Root
			if rootValue == "" {
				rootValue = fmt.Sprintf("(auto-detect: %s)", root)
			}
			out.Printf("root: %s\n", rootValue)
			out.Printf("doc_suffix: %s%s\n", eff.DocSuffix, source(local != nil && local.DocSuffix != ""))
			out.Printf("manifest: %s%s\n", eff.Manifest, source(local != nil && local.Manifest != ""))
			out.Printf("rpkgs.always_require: %v%s\n", eff.Rpkgs.AlwaysRequire, source(local != nil && len(local.Rpkgs.AlwaysRequire) > 0))
			out.Printf("rpkgs.exclude: %v%s\n", eff.Rpkgs.Exclude, source(local != nil && len(local.Rpkgs.Exclude) > 0))
			out.Printf("status.depth: %d%s\n", eff.Status.Depth, source(local != nil && local.Status.Depth != nil))
			out.Printf("status.limit: %d%s\n", eff.Status.Limit, source(local != nil && local.Status.Limit != nil))
			out.Printf("watch.debounce_ms: %d%s\n", eff.Watch.DebounceMS, source(local != nil && local.Watch.DebounceMS != nil))
			if names := slices.Sorted(maps.Keys(eff.Hooks)); len(names) > 0 {
				out.Printf("hooks: %v%s\n", names, source(local != nil && len(local.Hooks) > 0))
			} else {
				out.Printf("hooks: (none)\n")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
