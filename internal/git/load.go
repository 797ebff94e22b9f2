package git

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LoadWarning represents a non-fatal error encountered while collecting the
// status of a repo.
type LoadWarning struct {
	RepoName string
	Err      error
}

// LoadStatuses collects the status of all repos in parallel.
// Results maintain stable ordering (by repo index); per-repo errors are
// collected as warnings (non-fatal). A limit <= 0 falls back to 8.
func LoadStatuses(ctx context.Context, repos []Repo, limit int) ([]RepoStatus, []LoadWarning) {
	// Per-repo results stored by index for stable ordering
	type repoResult struct {
		status  RepoStatus
		warning *LoadWarning
	}

	if limit <= 0 {
		limit = 8
	}

	results := make([]repoResult, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit) // Bound concurrent git operations

	for i, repo := range repos {
		g.Go(func() error {
			status, err := Status(ctx, repo.Path)
			if err != nil {
				results[i] = repoResult{warning: &LoadWarning{RepoName: repo.Name, Err: err}}
				return nil // Never fail, warnings are non-fatal
			}
			status.Name = repo.Name
			results[i] = repoResult{status: status}
			return nil
		})
	}

	_ = g.Wait() // Always nil, goroutines collect errors as warnings

	var statuses []RepoStatus
	var warnings []LoadWarning
	for _, r := range results {
		if r.warning != nil {
			warnings = append(warnings, *r.warning)
			continue
		}
		statuses = append(statuses, r.status)
	}

	return statuses, warnings
}
