package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/qdoc-dev/qdoc/internal/document"
	"github.com/qdoc-dev/qdoc/internal/log"
	"github.com/qdoc-dev/qdoc/internal/rpkg"
	"github.com/qdoc-dev/qdoc/internal/ui"
)

// fmEntry is one document's decoded front matter for JSON output.
type fmEntry struct {
	Path string         `json:"path"`
	Meta map[string]any `json:"meta"`
}

// renderFrontMatter formats the front matter of every document that has
// one, as delimited YAML blocks or as a JSON array. Returns "" when no
// selected document has front matter.
func renderFrontMatter(ctx context.Context, docs []document.Document, asJSON bool) (string, error) {
	l := log.FromContext(ctx)

	if asJSON {
		entries := make([]fmEntry, 0, len(docs))
		for _, d := range docs {
			meta, err := document.Meta(d.Content)
			if err != nil {
				l.Printf("Warning: %s: %v\n", d.Path, err)
				continue
			}
			if meta == nil {
				l.Debug("no front matter", "path", d.Path)
				continue
			}
			entries = append(entries, fmEntry{Path: d.Path, Meta: meta})
		}
		if len(entries) == 0 {
			return "", nil
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode front matter: %w", err)
		}
		return string(data) + "\n", nil
	}

	var b strings.Builder
	found := 0
	for _, d := range docs {
		block, ok := document.FrontMatter(d.Content)
		if !ok {
			l.Debug("no front matter", "path", d.Path)
			continue
		}
		found++
		// Path headers only matter when output mixes documents
		if len(docs) > 1 {
			fmt.Fprintf(&b, "# %s\n", d.Path)
		}
		b.WriteString("---\n")
		if len(block) > 0 {
			b.Write(block)
			b.WriteString("\n")
		}
		b.WriteString("---\n")
	}
	if found == 0 {
		return "", nil
	}
	return b.String(), nil
}

// pickDocument narrows the document set to one entry via the interactive
// picker. ok is false when the user cancels.
func pickDocument(docs []document.Document) (document.Document, bool, error) {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stderr) {
		return document.Document{}, false, fmt.Errorf("--pick requires a terminal")
	}

	items := make([]ui.PickItem, len(docs))
	for i, d := range docs {
		items[i] = ui.PickItem{Label: d.Path, Note: docNote(d.Content)}
	}

	idx, err := ui.Pick("Select a document", items)
	if err != nil {
		return document.Document{}, false, err
	}
	if idx < 0 {
		return document.Document{}, false, nil
	}
	return docs[idx], true, nil
}

// docNote annotates a document with its detection state for display.
func docNote(content []byte) string {
	if !rpkg.UsesEngine(content) {
		return ""
	}
	if rpkg.EvalDisabled(content) {
		return "eval disabled"
	}
	return "r"
}
