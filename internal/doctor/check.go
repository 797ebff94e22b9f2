package doctor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/document"
	"github.com/qdoc-dev/qdoc/internal/git"
	"github.com/qdoc-dev/qdoc/internal/rpkg"
)

// checkConfigIssues verifies that the global and per-workspace config
// files parse and validate.
func checkConfigIssues(root string) []Issue {
	var issues []Issue

	if _, err := config.Load(); err != nil {
		key := "config.toml"
		if path, perr := config.Path(); perr == nil {
			key = path
		}
		issues = append(issues, Issue{
			Key:         key,
			Description: err.Error(),
		})
	}

	if _, err := config.LoadLocal(root); err != nil {
		issues = append(issues, Issue{
			Key:         config.LocalConfigFileName,
			Description: err.Error(),
		})
	}

	return issues
}

// checkDocumentIssues loads every tracked document, reporting the ones
// that cannot be read or whose front matter is broken. The readable
// documents are returned for the manifest check; broken front matter
// doesn't hide a document from detection, which scans raw text.
func checkDocumentIssues(ctx context.Context, root string, cfg *config.Config, stats *Stats) ([]document.Document, []Issue) {
	var issues []Issue

	tracked, err := git.LsFiles(ctx, root, "*"+cfg.DocSuffix)
	if err != nil {
		issues = append(issues, Issue{
			Key:         ".",
			Description: fmt.Sprintf("cannot discover tracked documents: %v", err),
		})
		return nil, issues
	}

	docs := make([]document.Document, 0, len(tracked))
	for _, path := range tracked {
		content, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			stats.DocsUnreadable++
			issues = append(issues, Issue{
				Key:         path,
				Description: "tracked document cannot be read",
			})
			continue
		}

		if _, err := document.Meta(content); err != nil {
			stats.DocsBrokenMeta++
			issues = append(issues, Issue{
				Key:         path,
				Description: fmt.Sprintf("front matter is not valid YAML: %v", err),
			})
		} else {
			stats.DocsValid++
		}

		docs = append(docs, document.Document{Path: path, Content: content})
	}

	return docs, issues
}

// checkManifestIssues compares the manifest on disk against what a
// detection run over the current document set would write.
func checkManifestIssues(expected rpkg.Result, manifestName string) []Issue {
	var issues []Issue

	data, err := os.ReadFile(expected.Path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		issues = append(issues, Issue{
			Key:         manifestName,
			Description: fmt.Sprintf("cannot read manifest: %v", err),
		})
		return issues
	}

	switch expected.Outcome {
	case rpkg.OutcomeNoDocuments, rpkg.OutcomeNoUsage:
		if exists {
			issues = append(issues, Issue{
				Key:         manifestName,
				Description: "stale manifest, the document set has no R usage",
				FixAction:   "remove",
			})
		}
	default:
		if !exists {
			issues = append(issues, Issue{
				Key:         manifestName,
				Description: fmt.Sprintf("manifest missing, detection requires %d packages", len(expected.Packages)),
				FixAction:   "rewrite",
			})
		} else if !bytes.Equal(data, rpkg.ManifestContent(expected.Packages)) {
			issues = append(issues, Issue{
				Key:         manifestName,
				Description: fmt.Sprintf("manifest out of date, detection requires %d packages", len(expected.Packages)),
				FixAction:   "rewrite",
			})
		}
	}

	return issues
}
