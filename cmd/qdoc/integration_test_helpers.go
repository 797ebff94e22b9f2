//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/log"
	"github.com/qdoc-dev/qdoc/internal/output"
)

// testContext returns a context wired the way Execute wires it, with
// diagnostics and primary output discarded and the default config.
func testContext(t *testing.T) context.Context {
	t.Helper()
	cfg := config.Default()
	return testContextWithConfig(t, &cfg)
}

// testContextWithConfig returns a context carrying the given config.
// Tests point cfg.Root at their workspace so commands never fall back
// to the working directory of the test process.
func testContextWithConfig(t *testing.T, cfg *config.Config) context.Context {
	t.Helper()
	ctx := log.WithLogger(context.Background(), log.New(io.Discard, false, false))
	ctx = output.WithPrinter(ctx, io.Discard)
	return config.WithConfig(ctx, cfg)
}

// testContextWithOutput additionally captures primary output.
func testContextWithOutput(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	return testContextWithConfigAndOutput(t, &cfg)
}

// testContextWithConfigAndOutput captures primary output for a context
// carrying the given config.
func testContextWithConfigAndOutput(t *testing.T, cfg *config.Config) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(io.Discard, false, false))
	ctx = output.WithPrinter(ctx, &buf)
	ctx = config.WithConfig(ctx, cfg)
	return ctx, &buf
}

// workspaceConfigFor returns a default config rooted at the given
// workspace.
func workspaceConfigFor(root string) *config.Config {
	cfg := config.Default()
	cfg.Root = root
	return &cfg
}

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupWorkspace creates a git-backed workspace with the given documents
// committed, so tracked-file discovery finds them. Keys are paths
// relative to the root. Returns the workspace root (symlinks resolved).
func setupWorkspace(t *testing.T, docs map[string]string) string {
	t.Helper()

	root := resolvePath(t, t.TempDir())

	cmds := [][]string{
		{"git", "init"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}

	for rel, content := range docs {
		writeWorkspaceFile(t, root, rel, content)
	}

	runGitCommand(t, root, "git", "add", "-A")
	runGitCommand(t, root, "git", "commit", "-m", "Initial commit", "--allow-empty")

	return root
}

// writeWorkspaceFile writes one file under root, creating parent
// directories. The file is not staged.
func writeWorkspaceFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// readWorkspaceFile reads a file under root and fails the test if it is
// missing.
func readWorkspaceFile(t *testing.T, root, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	cmds := [][]string{
		{"git", "init"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = repoPath
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "-m", "Initial commit")

	return repoPath
}

// makeDirty creates uncommitted changes in a repo.
func makeDirty(t *testing.T, repoPath string) {
	t.Helper()

	filePath := filepath.Join(repoPath, "dirty.txt")
	if err := os.WriteFile(filePath, []byte("uncommitted changes\n"), 0644); err != nil {
		t.Fatalf("failed to create dirty file: %v", err)
	}
}

// stageFile creates and stages a file in a repo without committing it.
func stageFile(t *testing.T, repoPath, filename string) {
	t.Helper()

	filePath := filepath.Join(repoPath, filename)
	if err := os.WriteFile(filePath, []byte("content for "+filename+"\n"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	runGitCommand(t, repoPath, "git", "add", filename)
}

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}
