package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/qdoc-dev/qdoc/internal/document"
	"github.com/qdoc-dev/qdoc/internal/output"
	"github.com/qdoc-dev/qdoc/internal/rpkg"
	"github.com/qdoc-dev/qdoc/internal/ui"
)

// DocumentDisplay holds document info for display
type DocumentDisplay struct {
	Path         string `json:"path"`
	Title        string `json:"title,omitempty"`
	Engine       string `json:"engine"`
	EvalDisabled bool   `json:"eval_disabled"`
}

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List tracked documents",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the tracked documents of the workspace.

Shows each document's path, front-matter title, whether it uses the R
engine, and whether it disables evaluation.`,
		Example: `  qdoc list                    # Table of tracked documents
  qdoc list --json             # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root, wcfg, err := workspaceConfig(ctx)
			if err != nil {
				return err
			}

			docs := document.Collect(ctx, root, wcfg.DocSuffix, nil)

			display := make([]DocumentDisplay, 0, len(docs))
			for _, d := range docs {
				display = append(display, describeDocument(d))
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			if len(display) == 0 {
				out.Println("No documents found")
				return nil
			}

			headers := []string{"PATH", "TITLE", "ENGINE", "EVAL"}
			var rows [][]string
			for _, doc := range display {
				rows = append(rows, documentRow(doc))
			}
			out.Print(ui.RenderTable(headers, rows))

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// describeDocument classifies one document with the detector's checks.
func describeDocument(d document.Document) DocumentDisplay {
	display := DocumentDisplay{
		Path:   d.Path,
		Title:  document.Title(d.Content),
		Engine: "none",
	}
	if rpkg.UsesEngine(d.Content) {
		display.Engine = "r"
		display.EvalDisabled = rpkg.EvalDisabled(d.Content)
	}
	return display
}

// documentRow formats one document as table cells.
func documentRow(doc DocumentDisplay) []string {
	title := doc.Title
	if title == "" {
		title = "-"
	}

	eval := "-"
	if doc.Engine != "none" {
		eval = "on"
		if doc.EvalDisabled {
			eval = "off"
		}
	}

	return []string{doc.Path, title, doc.Engine, eval}
}
