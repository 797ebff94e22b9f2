//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolateHome points HOME at an empty directory so the checks never see
// a developer's real global config.
func isolateHome(t *testing.T) {
	t.Helper()
	tmpDir := resolvePath(t, t.TempDir())
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
}

// TestDoctor_HealthyWorkspace tests a workspace with nothing wrong.
//
// Scenario: User runs `qdoc doctor` where the manifest matches the
// document set and all files parse
// Expected: Every check passes and no issues are reported
func TestDoctor_HealthyWorkspace(t *testing.T) {
	// Not parallel - modifies HOME
	isolateHome(t)

	root := setupWorkspace(t, map[string]string{
		"analysis.qmd": analysisDoc,
	})
	writeWorkspaceFile(t, root, "R.pkgs", "dplyr\nevaluate\nggplot2\nknitr\nrmarkdown\n")

	ctx, out := testContextWithConfigAndOutput(t, workspaceConfigFor(root))
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor command failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "No issues found") {
		t.Errorf("expected clean bill of health, got: %s", output)
	}
	if !strings.Contains(output, "✓ config files valid") {
		t.Errorf("expected config check to pass, got: %s", output)
	}
	if !strings.Contains(output, "✓ 1 documents healthy") {
		t.Errorf("expected document check to pass, got: %s", output)
	}
	if !strings.Contains(output, "✓ manifest up to date") {
		t.Errorf("expected manifest check to pass, got: %s", output)
	}
}

// TestDoctor_ReportsManifestDrift tests drift detection without --fix.
//
// Scenario: User runs `qdoc doctor` after editing documents without
// re-running rpkgs
// Expected: The stale manifest is reported as fixable but left untouched
func TestDoctor_ReportsManifestDrift(t *testing.T) {
	// Not parallel - modifies HOME
	isolateHome(t)

	root := setupWorkspace(t, map[string]string{
		"analysis.qmd": analysisDoc,
	})
	writeWorkspaceFile(t, root, "R.pkgs", "forcats\n")

	ctx, out := testContextWithConfigAndOutput(t, workspaceConfigFor(root))
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor command failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "manifest out of date") {
		t.Errorf("expected drift finding, got: %s", output)
	}
	if !strings.Contains(output, "doctor --fix") {
		t.Errorf("expected fix suggestion, got: %s", output)
	}

	if got := readWorkspaceFile(t, root, "R.pkgs"); got != "forcats\n" {
		t.Errorf("manifest was modified without --fix: %q", got)
	}
}

// TestDoctor_FixRewritesManifest tests manifest repair.
//
// Scenario: User runs `qdoc doctor --fix` with a stale manifest
// Expected: The manifest is rewritten to match the document set
func TestDoctor_FixRewritesManifest(t *testing.T) {
	// Not parallel - modifies HOME
	isolateHome(t)

	root := setupWorkspace(t, map[string]string{
		"analysis.qmd": analysisDoc,
	})
	writeWorkspaceFile(t, root, "R.pkgs", "forcats\n")

	ctx, out := testContextWithConfigAndOutput(t, workspaceConfigFor(root))
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--fix"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor --fix failed: %v", err)
	}

	got := readWorkspaceFile(t, root, "R.pkgs")
	want := "dplyr\nevaluate\nggplot2\nknitr\nrmarkdown\n"
	if got != want {
		t.Errorf("manifest content = %q, want %q", got, want)
	}
	if !strings.Contains(out.String(), "Rewrote R.pkgs") {
		t.Errorf("expected rewrite notice, got: %s", out.String())
	}
}

// TestDoctor_FixRemovesStaleManifest tests stale manifest removal.
//
// Scenario: User runs `qdoc doctor --fix` after all R usage was removed
// from the documents, with the old manifest still on disk
// Expected: The manifest is deleted
func TestDoctor_FixRemovesStaleManifest(t *testing.T) {
	// Not parallel - modifies HOME
	isolateHome(t)

	root := setupWorkspace(t, map[string]string{
		"notes.qmd": notesDoc,
	})
	writeWorkspaceFile(t, root, "R.pkgs", "dplyr\n")

	ctx, out := testContextWithConfigAndOutput(t, workspaceConfigFor(root))
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--fix"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor --fix failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "R.pkgs")); !os.IsNotExist(err) {
		t.Error("stale manifest should be removed")
	}
	if !strings.Contains(out.String(), "Removed stale R.pkgs") {
		t.Errorf("expected removal notice, got: %s", out.String())
	}
}

// TestDoctor_BrokenFrontMatter tests the document check.
//
// Scenario: A tracked document has front matter that is not valid YAML
// Expected: Doctor reports it for manual attention; --fix cannot repair
// it
func TestDoctor_BrokenFrontMatter(t *testing.T) {
	// Not parallel - modifies HOME
	isolateHome(t)

	root := setupWorkspace(t, map[string]string{
		"broken.qmd": "---\ntitle: [unclosed\n---\n\nBody.\n",
	})

	ctx, out := testContextWithConfigAndOutput(t, workspaceConfigFor(root))
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--fix"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor --fix failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "front matter is not valid YAML") {
		t.Errorf("expected front matter finding, got: %s", output)
	}
	if !strings.Contains(output, "Cannot fix broken.qmd") {
		t.Errorf("expected manual-attention notice, got: %s", output)
	}
}

// TestDoctor_BrokenLocalConfig tests that doctor diagnoses the exact
// situation that aborts other commands.
//
// Scenario: The workspace .qdoc.toml does not parse, user runs
// `qdoc doctor`
// Expected: The parse failure is a finding and the remaining checks
// still run against the global config
func TestDoctor_BrokenLocalConfig(t *testing.T) {
	// Not parallel - modifies HOME
	isolateHome(t)

	root := setupWorkspace(t, map[string]string{
		"analysis.qmd": analysisDoc,
	})
	writeWorkspaceFile(t, root, ".qdoc.toml", "manifest = [unclosed\n")
	writeWorkspaceFile(t, root, "R.pkgs", "dplyr\nevaluate\nggplot2\nknitr\nrmarkdown\n")

	ctx, out := testContextWithConfigAndOutput(t, workspaceConfigFor(root))
	cmd := newDoctorCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor must not abort on a broken local config: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, ".qdoc.toml") {
		t.Errorf("expected local config finding, got: %s", output)
	}
	if !strings.Contains(output, "✓ manifest up to date") {
		t.Errorf("expected manifest check to run against global config, got: %s", output)
	}
}
