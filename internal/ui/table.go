package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/qdoc-dev/qdoc/internal/git"
)

// StatusHeaders are the column headers for status table output.
var StatusHeaders = []string{"REPO", "BRANCH", "SYNC", "CHANGES"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

// StatusRow formats one repository status as styled cells for RenderTable.
// Column order matches StatusHeaders.
func StatusRow(s git.RepoStatus) []string {
	return []string{s.Name, branchCell(s), syncCell(s), changesCell(s)}
}

func branchCell(s git.RepoStatus) string {
	if s.Branch == "" || s.Branch == "(detached)" {
		return MutedStyle.Render("(detached)")
	}
	return s.Branch
}

// syncCell summarizes drift against the upstream branch. Repositories
// without an upstream show a muted dash since there is nothing to
// compare against.
func syncCell(s git.RepoStatus) string {
	if s.Upstream == "" {
		return MutedStyle.Render("-")
	}
	if s.Ahead == 0 && s.Behind == 0 {
		return SuccessStyle.Render("✓")
	}

	parts := make([]string, 0, 2)
	if s.Ahead > 0 {
		parts = append(parts, AccentStyle.Render(fmt.Sprintf("↑%d", s.Ahead)))
	}
	if s.Behind > 0 {
		parts = append(parts, WarnStyle.Render(fmt.Sprintf("↓%d", s.Behind)))
	}
	return strings.Join(parts, " ")
}

// changesCell summarizes local modifications as staged/unstaged/untracked
// counts, or "clean" when there are none.
func changesCell(s git.RepoStatus) string {
	if !s.Dirty() {
		return SuccessStyle.Render("clean")
	}

	parts := make([]string, 0, 3)
	if s.Staged > 0 {
		parts = append(parts, SuccessStyle.Render(fmt.Sprintf("+%d", s.Staged)))
	}
	if s.Unstaged > 0 {
		parts = append(parts, WarnStyle.Render(fmt.Sprintf("~%d", s.Unstaged)))
	}
	if s.Untracked > 0 {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("?%d", s.Untracked)))
	}
	return strings.Join(parts, " ")
}
