package ui

import (
	"strings"
	"testing"

	"github.com/qdoc-dev/qdoc/internal/git"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := RenderTable(
		[]string{"PATH", "TITLE"},
		[][]string{
			{"report.qmd", "Quarterly Report"},
			{"notes/intro.qmd", "Introduction"},
		},
	)

	for _, want := range []string{"PATH", "TITLE", "report.qmd", "Quarterly Report", "notes/intro.qmd"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	t.Parallel()

	if out := RenderTable([]string{"PATH"}, nil); out != "" {
		t.Errorf("expected empty output for no rows, got %q", out)
	}
}

func TestStatusRow(t *testing.T) {
	t.Parallel()

	s := git.RepoStatus{
		Name:      "docs/site",
		Branch:    "main",
		Upstream:  "origin/main",
		Ahead:     2,
		Behind:    1,
		Staged:    1,
		Unstaged:  2,
		Untracked: 3,
	}

	row := StatusRow(s)

	// Must have exactly 4 columns matching StatusHeaders
	if len(row) != len(StatusHeaders) {
		t.Fatalf("expected %d columns, got %d", len(StatusHeaders), len(row))
	}

	if row[0] != "docs/site" {
		t.Errorf("column 0 (REPO) = %q, want %q", row[0], "docs/site")
	}
	if row[1] != "main" {
		t.Errorf("column 1 (BRANCH) = %q, want %q", row[1], "main")
	}
	for _, want := range []string{"↑2", "↓1"} {
		if !strings.Contains(row[2], want) {
			t.Errorf("column 2 (SYNC) should contain %q, got %q", want, row[2])
		}
	}
	for _, want := range []string{"+1", "~2", "?3"} {
		if !strings.Contains(row[3], want) {
			t.Errorf("column 3 (CHANGES) should contain %q, got %q", want, row[3])
		}
	}
}

func TestStatusRowClean(t *testing.T) {
	t.Parallel()

	s := git.RepoStatus{
		Name:     ".",
		Branch:   "main",
		Upstream: "origin/main",
	}

	row := StatusRow(s)

	if !strings.Contains(row[2], "✓") {
		t.Errorf("in-sync SYNC cell should contain ✓, got %q", row[2])
	}
	if !strings.Contains(row[3], "clean") {
		t.Errorf("clean CHANGES cell should contain \"clean\", got %q", row[3])
	}
}

func TestStatusRowNoUpstream(t *testing.T) {
	t.Parallel()

	s := git.RepoStatus{Name: "scratch", Branch: "experiment"}

	row := StatusRow(s)

	if !strings.Contains(row[2], "-") {
		t.Errorf("SYNC cell without upstream should contain \"-\", got %q", row[2])
	}
}

func TestStatusRowDetached(t *testing.T) {
	t.Parallel()

	s := git.RepoStatus{Name: "vendor/theme", Branch: "(detached)"}

	row := StatusRow(s)

	if !strings.Contains(row[1], "(detached)") {
		t.Errorf("BRANCH cell should contain \"(detached)\", got %q", row[1])
	}
}
