package git

import (
	"context"
	"fmt"
	"strings"
)

// Toplevel returns the root directory of the repository containing dir.
func Toplevel(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// LsFiles returns tracked files in the repo at repoPath, filtered by the
// given pathspec patterns (all tracked files when none are given).
// Paths are relative to repoPath. Uses NUL separation so unusual file
// names survive; git pathspec globs match across directory separators,
// so "*.qmd" finds documents at any depth.
func LsFiles(ctx context.Context, repoPath string, patterns ...string) ([]string, error) {
	args := []string{"ls-files", "-z"}
	if len(patterns) > 0 {
		args = append(args, "--")
		args = append(args, patterns...)
	}

	output, err := outputGit(ctx, repoPath, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %v", err)
	}

	var files []string
	for _, f := range strings.Split(string(output), "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files, nil
}
