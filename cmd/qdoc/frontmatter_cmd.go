package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/qdoc-dev/qdoc/internal/document"
	"github.com/qdoc-dev/qdoc/internal/log"
	"github.com/qdoc-dev/qdoc/internal/output"
)

func newFrontmatterCmd() *cobra.Command {
	var (
		jsonOutput bool
		outFile    string
		copyOut    bool
		pick       bool
	)

	cmd := &cobra.Command{
		Use:     "frontmatter [files...]",
		Short:   "Export YAML front matter of documents",
		Aliases: []string{"fm"},
		GroupID: GroupCore,
		Long: `Print the YAML front matter of the selected documents.

Without arguments every tracked document is selected. Blocks are printed
delimited by --- lines; when more than one document is selected each
block is preceded by a # <path> comment line. Documents without front
matter are skipped.`,
		Example: `  qdoc frontmatter                  # Front matter of all tracked documents
  qdoc frontmatter report.qmd       # A single document
  qdoc frontmatter --json           # Decoded metadata as a JSON array
  qdoc frontmatter --pick           # Choose a document interactively
  qdoc frontmatter --out meta.yml   # Write to a file instead of stdout
  qdoc frontmatter --copy           # Also copy to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, wcfg, err := workspaceConfig(ctx)
			if err != nil {
				return err
			}

			docs := document.Collect(ctx, root, wcfg.DocSuffix, args)

			if pick {
				doc, ok, err := pickDocument(docs)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				docs = []document.Document{doc}
			}

			rendered, err := renderFrontMatter(ctx, docs, jsonOutput)
			if err != nil {
				return err
			}
			if rendered == "" {
				l.Println("No front matter found")
				return nil
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(rendered), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outFile, err)
				}
				l.Printf("Wrote %s\n", outFile)
			} else {
				out.Print(rendered)
			}

			if copyOut {
				if err := clipboard.WriteAll(rendered); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output decoded metadata as JSON")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the output to the clipboard")
	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "Pick a single document interactively")

	return cmd
}
