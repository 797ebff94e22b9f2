package doctor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qdoc-dev/qdoc/internal/output"
	"github.com/qdoc-dev/qdoc/internal/rpkg"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestCheckManifestIssues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		outcome    rpkg.Outcome
		packages   []string
		onDisk     string // manifest content, empty means no file
		wantIssues int
		wantFix    string
		wantDesc   string
	}{
		{
			name:       "matching manifest is healthy",
			outcome:    rpkg.OutcomeGeneral,
			packages:   []string{"dplyr", "evaluate"},
			onDisk:     "dplyr\nevaluate\n",
			wantIssues: 0,
		},
		{
			name:       "missing manifest needs rewrite",
			outcome:    rpkg.OutcomeGeneral,
			packages:   []string{"dplyr", "evaluate"},
			wantIssues: 1,
			wantFix:    "rewrite",
			wantDesc:   "manifest missing",
		},
		{
			name:       "stale content needs rewrite",
			outcome:    rpkg.OutcomeGeneral,
			packages:   []string{"dplyr", "evaluate"},
			onDisk:     "forcats\n",
			wantIssues: 1,
			wantFix:    "rewrite",
			wantDesc:   "manifest out of date",
		},
		{
			name:       "weave manifest compares like any other",
			outcome:    rpkg.OutcomeAllDisabled,
			packages:   []string{"knitr", "rmarkdown"},
			onDisk:     "knitr\nrmarkdown\n",
			wantIssues: 0,
		},
		{
			name:       "no usage with manifest present needs removal",
			outcome:    rpkg.OutcomeNoUsage,
			onDisk:     "dplyr\n",
			wantIssues: 1,
			wantFix:    "remove",
			wantDesc:   "stale manifest",
		},
		{
			name:       "no usage without manifest is healthy",
			outcome:    rpkg.OutcomeNoUsage,
			wantIssues: 0,
		},
		{
			name:       "no documents with manifest present needs removal",
			outcome:    rpkg.OutcomeNoDocuments,
			onDisk:     "dplyr\n",
			wantIssues: 1,
			wantFix:    "remove",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			path := filepath.Join(root, "R.pkgs")
			if tt.onDisk != "" {
				writeFile(t, path, tt.onDisk)
			}

			expected := rpkg.Result{
				Outcome:  tt.outcome,
				Path:     path,
				Packages: tt.packages,
			}

			issues := checkManifestIssues(expected, "R.pkgs")
			if len(issues) != tt.wantIssues {
				t.Fatalf("got %d issues, want %d: %+v", len(issues), tt.wantIssues, issues)
			}
			if tt.wantIssues == 0 {
				return
			}
			if issues[0].FixAction != tt.wantFix {
				t.Errorf("FixAction = %q, want %q", issues[0].FixAction, tt.wantFix)
			}
			if tt.wantDesc != "" && !strings.Contains(issues[0].Description, tt.wantDesc) {
				t.Errorf("Description = %q, want substring %q", issues[0].Description, tt.wantDesc)
			}
			if issues[0].Key != "R.pkgs" {
				t.Errorf("Key = %q, want %q", issues[0].Key, "R.pkgs")
			}
		})
	}
}

func TestFixAllIssues_Rewrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "R.pkgs")
	writeFile(t, path, "forcats\n")

	expected := rpkg.Result{
		Outcome:  rpkg.OutcomeGeneral,
		Path:     path,
		Packages: []string{"dplyr", "evaluate"},
	}
	issues := []Issue{{Key: "R.pkgs", FixAction: "rewrite", Category: CategoryManifest}}

	var buf bytes.Buffer
	if err := fixAllIssues(output.New(&buf), issues, expected); err != nil {
		t.Fatalf("fixAllIssues() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	if got, want := string(data), "dplyr\nevaluate\n"; got != want {
		t.Errorf("manifest = %q, want %q", got, want)
	}
	if !strings.Contains(buf.String(), "Fixed 1 issues.") {
		t.Errorf("output = %q, want fixed summary", buf.String())
	}
}

func TestFixAllIssues_Remove(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "R.pkgs")
	writeFile(t, path, "dplyr\n")

	expected := rpkg.Result{Outcome: rpkg.OutcomeNoUsage, Path: path}
	issues := []Issue{{Key: "R.pkgs", FixAction: "remove", Category: CategoryManifest}}

	var buf bytes.Buffer
	if err := fixAllIssues(output.New(&buf), issues, expected); err != nil {
		t.Fatalf("fixAllIssues() = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("manifest still exists after fix")
	}
	if !strings.Contains(buf.String(), "Removed stale R.pkgs") {
		t.Errorf("output = %q, want removal line", buf.String())
	}
}

func TestFixAllIssues_ManualOnly(t *testing.T) {
	t.Parallel()

	issues := []Issue{{
		Key:         "report.qmd",
		Description: "front matter is not valid YAML",
		Category:    CategoryDocument,
	}}

	var buf bytes.Buffer
	if err := fixAllIssues(output.New(&buf), issues, rpkg.Result{}); err != nil {
		t.Fatalf("fixAllIssues() = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Cannot fix report.qmd") {
		t.Errorf("output = %q, want manual line", out)
	}
	if !strings.Contains(out, "Fixed 0 issues, 1 need manual attention.") {
		t.Errorf("output = %q, want failure summary", out)
	}
}

// Not parallel - modifies HOME.
func TestCheckConfigIssues_BrokenLocal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".qdoc.toml"), "manifest = [unclosed\n")

	issues := checkConfigIssues(root)
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1: %+v", len(issues), issues)
	}
	if issues[0].Key != ".qdoc.toml" {
		t.Errorf("Key = %q, want .qdoc.toml", issues[0].Key)
	}
	if issues[0].FixAction != "" {
		t.Errorf("FixAction = %q, want manual", issues[0].FixAction)
	}
}

// Not parallel - modifies HOME.
func TestCheckConfigIssues_CleanWorkspace(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := t.TempDir()

	if issues := checkConfigIssues(root); len(issues) != 0 {
		t.Errorf("got %d issues for clean workspace, want 0: %+v", len(issues), issues)
	}
}
