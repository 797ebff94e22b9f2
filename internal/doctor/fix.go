package doctor

import (
	"github.com/qdoc-dev/qdoc/internal/output"
	"github.com/qdoc-dev/qdoc/internal/rpkg"
)

// fixAllIssues applies fixes for all fixable issues. Manifest drift is
// repaired the same way a detection run would repair it; everything else
// needs a manual edit.
func fixAllIssues(out *output.Printer, issues []Issue, expected rpkg.Result) error {
	var fixed int
	var failed int

	out.Println()
	for _, issue := range issues {
		switch issue.FixAction {
		case "rewrite":
			if err := rpkg.WriteManifest(expected.Path, expected.Packages); err != nil {
				out.Printf("  ✗ Failed to rewrite %s: %v\n", issue.Key, err)
				failed++
			} else {
				out.Printf("  ✓ Rewrote %s (%d packages)\n", issue.Key, len(expected.Packages))
				fixed++
			}

		case "remove":
			if _, err := rpkg.RemoveManifest(expected.Path); err != nil {
				out.Printf("  ✗ Failed to remove %s: %v\n", issue.Key, err)
				failed++
			} else {
				out.Printf("  ✓ Removed stale %s\n", issue.Key)
				fixed++
			}

		default:
			out.Printf("  ⚠ Cannot fix %s: %s\n", issue.Key, issue.Description)
			failed++
		}
	}

	if failed > 0 {
		out.Printf("\nFixed %d issues, %d need manual attention.\n", fixed, failed)
	} else {
		out.Printf("\nFixed %d issues.\n", fixed)
	}
	return nil
}
