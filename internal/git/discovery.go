package git

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Repo is a git repository discovered under a workspace root.
type Repo struct {
	Name string // path relative to the scan root ("." for the root itself)
	Path string // absolute path
}

// Directories that never hold workspace repositories. Build output and
// package caches can be large, so the walk skips them entirely.
var skipDirs = map[string]bool{
	"node_modules": true,
	"_site":        true,
	"_freeze":      true,
	".quarto":      true,
	"renv":         true,
}

// FindRepos discovers git repositories under root, descending at most
// maxDepth directory levels (1 = direct children only). The root itself is
// included when it is a repository. Hidden directories and unreadable
// entries are skipped. Results come back in lexical walk order.
func FindRepos(root string, maxDepth int) ([]Repo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var repos []Repo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if rel != "." {
			name := d.Name()
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if strings.Count(rel, string(filepath.Separator))+1 > maxDepth {
				return filepath.SkipDir
			}
		}

		if isGitRepo(path) {
			repos = append(repos, Repo{Name: rel, Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return repos, nil
}

// isGitRepo checks if a path is a git repository (has .git dir or file)
func isGitRepo(path string) bool {
	gitPath := filepath.Join(path, ".git")
	info, err := os.Stat(gitPath)
	if err != nil {
		return false
	}
	// .git can be a directory (regular repo) or file (worktree, submodule)
	return info.IsDir() || info.Mode().IsRegular()
}
