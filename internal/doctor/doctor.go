package doctor

import (
	"context"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/output"
	"github.com/qdoc-dev/qdoc/internal/rpkg"
)

// Run performs diagnostic checks on the workspace at root and optionally
// fixes what it can. The global config is merged with any readable local
// config; a broken local file is itself one of the findings, so Run never
// fails on it.
func Run(ctx context.Context, root string, global *config.Config, fix bool) error {
	out := output.FromContext(ctx)

	cfg := effectiveConfig(root, global)

	var stats Stats
	var allIssues []Issue

	out.Println("Checking config files...")
	configIssues := checkConfigIssues(root)
	for i := range configIssues {
		configIssues[i].Category = CategoryConfig
	}
	allIssues = append(allIssues, configIssues...)
	stats.ConfigIssues = len(configIssues)

	out.Println("Checking documents...")
	docs, docIssues := checkDocumentIssues(ctx, root, cfg, &stats)
	for i := range docIssues {
		docIssues[i].Category = CategoryDocument
	}
	allIssues = append(allIssues, docIssues...)

	out.Println("Checking manifest...")
	expected := rpkg.Detect(ctx, docs, rpkg.Options{
		Root:          root,
		ManifestName:  cfg.Manifest,
		AlwaysRequire: cfg.Rpkgs.AlwaysRequire,
		Exclude:       cfg.Rpkgs.Exclude,
	})
	manifestIssues := checkManifestIssues(expected, cfg.Manifest)
	for i := range manifestIssues {
		manifestIssues[i].Category = CategoryManifest
	}
	allIssues = append(allIssues, manifestIssues...)
	stats.ManifestIssues = len(manifestIssues)

	printSummary(out, stats)

	if len(allIssues) == 0 {
		out.Println("\nNo issues found")
		return nil
	}

	out.Printf("\nFound %d issues:\n", len(allIssues))
	printIssuesByCategory(out, allIssues)

	if fix {
		return fixAllIssues(out, allIssues, expected)
	}

	out.Println("\nRun 'qdoc doctor --fix' to repair.")
	return nil
}

// effectiveConfig merges a readable local config over the global one.
// A broken local file falls back to the global config alone; the config
// check reports the parse failure separately.
func effectiveConfig(root string, global *config.Config) *config.Config {
	merged, err := config.ForRoot(global, root)
	if err != nil {
		return global
	}
	return merged
}

// printSummary prints a categorized summary.
func printSummary(out *output.Printer, stats Stats) {
	out.Println()

	if stats.ConfigIssues == 0 {
		out.Println("  ✓ config files valid")
	} else {
		out.Printf("  ⚠ %d config issues\n", stats.ConfigIssues)
	}

	out.Printf("  ✓ %d documents healthy\n", stats.DocsValid)
	if stats.DocsUnreadable > 0 {
		out.Printf("  ⚠ %d documents unreadable\n", stats.DocsUnreadable)
	}
	if stats.DocsBrokenMeta > 0 {
		out.Printf("  ⚠ %d documents with broken front matter\n", stats.DocsBrokenMeta)
	}

	if stats.ManifestIssues == 0 {
		out.Println("  ✓ manifest up to date")
	} else {
		out.Printf("  ⚠ %d manifest issues\n", stats.ManifestIssues)
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryConfig:   "Config issues",
		CategoryDocument: "Document issues",
		CategoryManifest: "Manifest issues",
	}

	for _, cat := range []IssueCategory{CategoryConfig, CategoryDocument, CategoryManifest} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			out.Printf("  • %s: %s\n", issue.Key, issue.Description)
		}
	}
}
