package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/git"
)

// resolveRoot determines the workspace root for a command run.
// Precedence: --root flag > configured root (which QDOC_ROOT already
// overrides at load time) > git toplevel of the working directory > the
// working directory itself.
func resolveRoot(ctx context.Context, cfg *config.Config) (string, error) {
	if rootFlag != "" {
		abs, err := filepath.Abs(rootFlag)
		if err != nil {
			return "", fmt.Errorf("failed to resolve --root: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("root is not a directory: %s", abs)
		}
		return abs, nil
	}

	if cfg != nil && cfg.Root != "" {
		return cfg.Root, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if top, err := git.Toplevel(ctx, wd); err == nil {
		return top, nil
	}
	return wd, nil
}

// workspaceConfig resolves the root and merges any per-workspace
// .qdoc.toml over the global config. Every command goes through this so
// the two values always agree.
func workspaceConfig(ctx context.Context) (string, *config.Config, error) {
	cfg := config.FromContext(ctx)

	root, err := resolveRoot(ctx, cfg)
	if err != nil {
		return "", nil, err
	}

	merged, err := config.ForRoot(cfg, root)
	if err != nil {
		return "", nil, err
	}
	return root, merged, nil
}
