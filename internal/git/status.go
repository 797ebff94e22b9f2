package git

import (
	"context"
	"fmt"
	"strings"
)

// RepoStatus summarizes the working tree state of one repository.
type RepoStatus struct {
	Name      string `json:"name"` // path relative to the scan root ("." for the root itself)
	Path      string `json:"path"`
	Branch    string `json:"branch"` // "(detached)" for detached HEAD
	Upstream  string `json:"upstream,omitempty"`
	Ahead     int    `json:"ahead"`
	Behind    int    `json:"behind"`
	Staged    int    `json:"staged"`
	Unstaged  int    `json:"unstaged"`
	Untracked int    `json:"untracked"`
}

// Dirty returns true if the repository has any local modification.
func (s RepoStatus) Dirty() bool {
	return s.Staged > 0 || s.Unstaged > 0 || s.Untracked > 0
}

// Status collects branch and change counts for the repo at path.
// Uses a single call: `git status --porcelain=v2 --branch`
func Status(ctx context.Context, path string) (RepoStatus, error) {
	output, err := outputGit(ctx, path, "status", "--porcelain=v2", "--branch")
	if err != nil {
		return RepoStatus{}, fmt.Errorf("failed to get status: %v", err)
	}

	status := parseStatus(output)
	status.Path = path
	return status, nil
}

// parseStatus parses `git status --porcelain=v2 --branch` output.
func parseStatus(output []byte) RepoStatus {
	var s RepoStatus

	for _, line := range strings.Split(string(output), "\n") {
		switch {
		case strings.HasPrefix(line, "# branch.head "):
			s.Branch = strings.TrimPrefix(line, "# branch.head ")
		case strings.HasPrefix(line, "# branch.upstream "):
			s.Upstream = strings.TrimPrefix(line, "# branch.upstream ")
		case strings.HasPrefix(line, "# branch.ab "):
			// Line is like "# branch.ab +2 -1"
			fmt.Sscanf(strings.TrimPrefix(line, "# branch.ab "), "+%d -%d", &s.Ahead, &s.Behind)
		case strings.HasPrefix(line, "1 "), strings.HasPrefix(line, "2 "):
			// Changed ("1") and renamed ("2") entries carry an XY pair:
			// X is the staged state, Y the unstaged state, '.' means unmodified
			if len(line) > 3 {
				if line[2] != '.' {
					s.Staged++
				}
				if line[3] != '.' {
					s.Unstaged++
				}
			}
		case strings.HasPrefix(line, "u "):
			// Unmerged entries always need local attention
			s.Unstaged++
		case strings.HasPrefix(line, "? "):
			s.Untracked++
		}
	}

	return s
}
