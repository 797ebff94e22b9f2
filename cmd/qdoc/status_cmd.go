package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qdoc-dev/qdoc/internal/git"
	"github.com/qdoc-dev/qdoc/internal/log"
	"github.com/qdoc-dev/qdoc/internal/output"
	"github.com/qdoc-dev/qdoc/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var (
		jsonOutput bool
		dirtyOnly  bool
		depth      int
	)

	cmd := &cobra.Command{
		Use:     "status [dirs...]",
		Short:   "Show git status across nested repositories",
		Aliases: []string{"st"},
		GroupID: GroupWorkspace,
		Long: `Show branch, upstream drift and local changes for every git
repository nested under the workspace root.

Without arguments the root is scanned to the configured depth. Explicit
directories are checked as given. Repositories that fail to report are
warnings, never fatal.`,
		Example: `  qdoc status                  # All repositories under the root
  qdoc status --dirty          # Only repositories with local changes
  qdoc status site vendor/theme  # Specific directories
  qdoc status --json           # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, wcfg, err := workspaceConfig(ctx)
			if err != nil {
				return err
			}
			if depth < 0 {
				depth = wcfg.Status.Depth
			}

			// Progress on stderr only when someone is watching
			var sp *ui.Spinner
			if !jsonOutput && ui.IsTerminal(os.Stderr) {
				sp = ui.NewSpinner("discovering repositories...")
				sp.Start()
				defer sp.Stop()
			}

			repos, err := collectRepos(root, args, depth)
			if err != nil {
				return err
			}

			if sp != nil {
				sp.UpdateMessage(fmt.Sprintf("checking %d repositories", len(repos)))
			}

			statuses, warnings := git.LoadStatuses(ctx, repos, wcfg.Status.Limit)

			if sp != nil {
				sp.Stop()
			}

			for _, w := range warnings {
				l.Printf("Warning: %s: %v\n", w.RepoName, w.Err)
			}

			if dirtyOnly {
				statuses = filterDirty(statuses)
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}

			if len(statuses) == 0 {
				if dirtyOnly {
					out.Println("All repositories are clean")
				} else {
					out.Println("No repositories found")
				}
				return nil
			}

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, ui.StatusRow(s))
			}
			out.Print(ui.RenderTable(ui.StatusHeaders, rows))

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&dirtyOnly, "dirty", "d", false, "Show only repositories with local changes")
	cmd.Flags().IntVar(&depth, "depth", -1, "Directory depth to scan for repositories (default from config)")

	return cmd
}

// collectRepos resolves the repository set: explicit directories as
// given, or a bounded scan below the root.
func collectRepos(root string, dirs []string, depth int) ([]git.Repo, error) {
	if len(dirs) == 0 {
		return git.FindRepos(root, depth)
	}

	repos := make([]git.Repo, 0, len(dirs))
	for _, d := range dirs {
		path := d
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, d)
		}
		repos = append(repos, git.Repo{Name: filepath.Clean(d), Path: path})
	}
	return repos, nil
}

func filterDirty(statuses []git.RepoStatus) []git.RepoStatus {
	var dirty []git.RepoStatus
	for _, s := range statuses {
		if s.Dirty() {
			dirty = append(dirty, s)
		}
	}
	return dirty
}
