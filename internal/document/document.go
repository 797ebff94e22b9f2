// Package document collects and reads the Quarto documents a command
// operates on.
//
// A document set is either the explicit paths given on the command line
// (order preserved, exactly as typed) or, when none are given, every
// git-tracked file matching the workspace document suffix. Paths that do
// not resolve to a readable file are silently skipped, never fatal: the
// detector's contract is that a missing document simply does not count.
package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/qdoc-dev/qdoc/internal/git"
	"github.com/qdoc-dev/qdoc/internal/log"
)

// Document is a loaded documentation source file.
type Document struct {
	Path    string // as collected, relative to the workspace root when discovered
	Content []byte
}

// Collect resolves and loads the document set for a run.
//
// Explicit paths are used exactly as given; relative ones resolve against
// root. With no explicit paths, tracked files matching suffix are
// discovered via git. A failing discovery (root outside any repository)
// yields an empty set with a logged warning, matching the "nothing to do"
// contract of the callers.
func Collect(ctx context.Context, root, suffix string, explicit []string) []Document {
	l := log.FromContext(ctx)

	paths := explicit
	if len(paths) == 0 {
		tracked, err := git.LsFiles(ctx, root, "*"+suffix)
		if err != nil {
			l.Printf("warning: cannot discover tracked documents: %v\n", err)
			return nil
		}
		paths = tracked
	}

	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, p)
		}
		content, err := os.ReadFile(abs)
		if err != nil {
			// Missing or unreadable documents are excluded, not errors
			l.Debug("skipping unreadable document", "path", p)
			continue
		}
		docs = append(docs, Document{Path: p, Content: content})
	}

	return docs
}

// Lines splits content into lines, tolerating CRLF endings.
func Lines(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
