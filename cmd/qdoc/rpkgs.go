package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/document"
	"github.com/qdoc-dev/qdoc/internal/hooks"
	"github.com/qdoc-dev/qdoc/internal/log"
	"github.com/qdoc-dev/qdoc/internal/output"
	"github.com/qdoc-dev/qdoc/internal/rpkg"
	"github.com/qdoc-dev/qdoc/internal/watch"
)

// runRpkgs executes one detection pass over the selected documents.
func runRpkgs(ctx context.Context, root string, wcfg *config.Config, files []string) (rpkg.Result, error) {
	docs := document.Collect(ctx, root, wcfg.DocSuffix, files)
	return rpkg.Run(ctx, docs, rpkg.Options{
		Root:          root,
		ManifestName:  wcfg.Manifest,
		AlwaysRequire: wcfg.Rpkgs.AlwaysRequire,
		Exclude:       wcfg.Rpkgs.Exclude,
	})
}

// reportRpkgs prints a one-line human summary of a detection result.
func reportRpkgs(ctx context.Context, res rpkg.Result) {
	out := output.FromContext(ctx)

	switch res.Outcome {
	case rpkg.OutcomeNoDocuments:
		if res.Removed {
			out.Printf("No documents found, removed stale %s\n", res.Path)
		} else {
			out.Println("No documents found, nothing to do")
		}
	case rpkg.OutcomeNoUsage:
		if res.Removed {
			out.Printf("No R usage detected, removed stale %s\n", res.Path)
		} else {
			out.Println("No R usage detected, nothing to do")
		}
	case rpkg.OutcomeAllDisabled:
		out.Printf("All documents disable evaluation, wrote %s (%d packages)\n", res.Path, len(res.Packages))
	default:
		out.Printf("Wrote %s (%d packages from %d documents)\n", res.Path, len(res.Packages), res.Documents)
	}
}

// fireHooks runs the selected hooks after a detection pass. Failures are
// warnings; the manifest on disk is already settled by this point.
func fireHooks(ctx context.Context, matches []hooks.Match, root string, res rpkg.Result, trigger hooks.Trigger) {
	if len(matches) == 0 {
		return
	}
	hooks.RunAllNonFatal(ctx, matches, hooks.Context{
		Root:      root,
		Manifest:  res.Path,
		Outcome:   res.Outcome.String(),
		Packages:  len(res.Packages),
		Documents: res.Documents,
		Trigger:   string(trigger),
	})
}

// watchRpkgs runs the detector once, then re-runs it whenever a matching
// document changes, until the context is cancelled.
func watchRpkgs(ctx context.Context, root string, wcfg *config.Config, files []string, matches []hooks.Match) error {
	l := log.FromContext(ctx)

	run := func(ctx context.Context) error {
		res, err := runRpkgs(ctx, root, wcfg, files)
		if err != nil {
			return err
		}
		reportRpkgs(ctx, res)
		fireHooks(ctx, matches, root, res, hooks.TriggerWatch)
		return nil
	}

	// First pass so the manifest reflects the current tree before any
	// change arrives.
	if err := run(ctx); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dir:      root,
		Patterns: watchPatterns(root, wcfg.DocSuffix, files),
		Debounce: time.Duration(wcfg.Watch.DebounceMS) * time.Millisecond,
		OnChange: func(ctx context.Context, changed []string) error {
			return run(ctx)
		},
	})
	if err != nil {
		return err
	}

	l.Printf("Watching %s for %s changes (Ctrl-C to stop)\n", root, wcfg.DocSuffix)
	return w.Run(ctx)
}

// watchPatterns selects the globs to watch: the explicit files when given,
// every document under the root otherwise.
func watchPatterns(root, suffix string, files []string) []string {
	if len(files) == 0 {
		return []string{"**/*" + suffix}
	}

	patterns := make([]string, 0, len(files))
	for _, f := range files {
		p := f
		if filepath.IsAbs(p) {
			if rel, err := filepath.Rel(root, p); err == nil {
				p = rel
			}
		}
		patterns = append(patterns, filepath.ToSlash(filepath.Clean(p)))
	}
	return patterns
}
