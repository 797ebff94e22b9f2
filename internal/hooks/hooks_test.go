package hooks

import (
	"testing"

	"github.com/qdoc-dev/qdoc/internal/config"
)

func TestSubstitutePlaceholders(t *testing.T) {
	t.Parallel()

	hctx := Context{
		Root:      "/home/user/research",
		Manifest:  "/home/user/research/R.pkgs",
		Outcome:   "general",
		Packages:  4,
		Documents: 3,
		Trigger:   "rpkgs",
	}

	tests := []struct {
		name     string
		command  string
		expected string
	}{
		{
			name:     "single placeholder",
			command:  "cat {manifest}",
			expected: "cat '/home/user/research/R.pkgs'",
		},
		{
			name:     "multiple placeholders",
			command:  "cd {root} && cat {manifest}",
			expected: "cd '/home/user/research' && cat '/home/user/research/R.pkgs'",
		},
		{
			name:     "all placeholders",
			command:  "{root} {manifest} {outcome} {packages} {documents} {trigger}",
			expected: "'/home/user/research' '/home/user/research/R.pkgs' 'general' '4' '3' 'rpkgs'",
		},
		{
			name:     "no placeholders",
			command:  "echo hello",
			expected: "echo hello",
		},
		{
			name:     "repeated placeholder",
			command:  "{manifest} and {manifest}",
			expected: "'/home/user/research/R.pkgs' and '/home/user/research/R.pkgs'",
		},
		{
			name:     "trigger placeholder",
			command:  "echo triggered by {trigger}",
			expected: "echo triggered by 'rpkgs'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := SubstitutePlaceholders(tt.command, hctx)
			if result != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, result, tt.expected)
			}
		})
	}
}

func TestSubstitutePlaceholders_ShellEscaping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hctx     Context
		command  string
		expected string
	}{
		{
			name: "root with spaces",
			hctx: Context{
				Root: "/home/user/my documents/site",
			},
			command:  "ls {root}",
			expected: "ls '/home/user/my documents/site'",
		},
		{
			name: "manifest with special chars",
			hctx: Context{
				Manifest: "/ws/deps && rm -rf",
			},
			command:  "cat {manifest}",
			expected: "cat '/ws/deps && rm -rf'",
		},
		{
			name: "value with single quotes",
			hctx: Context{
				Root: "/home/user/it's a path",
			},
			command:  "ls {root}",
			expected: "ls '/home/user/it'\\''s a path'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := SubstitutePlaceholders(tt.command, tt.hctx)
			if result != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, result, tt.expected)
			}
		})
	}
}

func TestSubstitutePlaceholders_CustomArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		env      map[string]string
		command  string
		expected string
	}{
		{
			name:     "custom key is quoted",
			env:      map[string]string{"msg": "hello world"},
			command:  "notify-send {msg}",
			expected: "notify-send 'hello world'",
		},
		{
			name:     "raw key is unquoted",
			env:      map[string]string{"flags": "-a -b"},
			command:  "tool {flags:raw}",
			expected: "tool -a -b",
		},
		{
			name:     "missing key with default",
			env:      nil,
			command:  "echo {msg:-nothing}",
			expected: "echo 'nothing'",
		},
		{
			name:     "present key ignores default",
			env:      map[string]string{"msg": "hi"},
			command:  "echo {msg:-nothing}",
			expected: "echo 'hi'",
		},
		{
			name:     "missing key without default becomes empty",
			env:      nil,
			command:  "echo {msg}",
			expected: "echo ''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := SubstitutePlaceholders(tt.command, Context{Env: tt.env})
			if result != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.command, result, tt.expected)
			}
		})
	}
}

func TestSelectHooks(t *testing.T) {
	t.Parallel()

	hooks := map[string]config.Hook{
		"lockfile": {
			Command:     "Rscript -e 'renv::snapshot()'",
			Description: "Refresh renv.lock",
			On:          []string{"rpkgs", "watch"},
		},
		"notify": {
			Command: "notify-send {outcome}",
			// no On - only runs via explicit name
		},
		"commit": {
			Command: "git add {manifest}",
			On:      []string{"rpkgs"},
		},
	}

	tests := []struct {
		name        string
		hookName    string
		noHooks     bool
		trigger     Trigger
		expectNames []string
		expectError bool
	}{
		{
			name:        "rpkgs trigger selects matching hooks in name order",
			trigger:     TriggerRpkgs,
			expectNames: []string{"commit", "lockfile"},
		},
		{
			name:        "watch trigger selects only watch hooks",
			trigger:     TriggerWatch,
			expectNames: []string{"lockfile"},
		},
		{
			name:        "explicit hook runs regardless of on condition",
			hookName:    "notify",
			trigger:     TriggerRpkgs,
			expectNames: []string{"notify"},
		},
		{
			name:        "no-hooks skips all",
			noHooks:     true,
			trigger:     TriggerRpkgs,
			expectNames: nil,
		},
		{
			name:        "unknown hook errors",
			hookName:    "nonexistent",
			trigger:     TriggerRpkgs,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			matches, err := SelectHooks(hooks, tt.hookName, tt.noHooks, tt.trigger)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(matches) != len(tt.expectNames) {
				t.Fatalf("expected %d hooks, got %d", len(tt.expectNames), len(matches))
			}
			for i, want := range tt.expectNames {
				if matches[i].Name != want {
					t.Errorf("match %d = %q, want %q", i, matches[i].Name, want)
				}
			}
		})
	}
}

func TestSelectHooks_NoOnCondition(t *testing.T) {
	t.Parallel()

	hooks := map[string]config.Hook{
		"notify": {Command: "notify-send done"}, // no On - only via explicit name
	}

	// Without an explicit name, hooks without "on" don't run
	matches, err := SelectHooks(hooks, "", false, TriggerRpkgs)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no hooks when no 'on' condition, got %d", len(matches))
	}

	// With an explicit name, it runs
	matches, err = SelectHooks(hooks, "notify", false, TriggerRpkgs)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 hook with explicit name, got %d", len(matches))
	}
}

func TestSelectHooks_OnAll(t *testing.T) {
	t.Parallel()

	hooks := map[string]config.Hook{
		"universal": {
			Command: "echo {trigger}",
			On:      []string{"all"},
		},
	}

	for _, trigger := range []Trigger{TriggerRpkgs, TriggerWatch, TriggerRun} {
		matches, err := SelectHooks(hooks, "", false, trigger)
		if err != nil {
			t.Errorf("unexpected error for %s: %v", trigger, err)
		}
		if len(matches) != 1 {
			t.Errorf("expected 1 hook for %s with on=all, got %d", trigger, len(matches))
		}
	}
}

func TestSelectHooks_UnknownTriggerValueNeverFires(t *testing.T) {
	t.Parallel()

	hooks := map[string]config.Hook{
		"typo": {
			Command: "echo hi",
			On:      []string{"rpkg"}, // not a trigger name
		},
	}

	for _, trigger := range []Trigger{TriggerRpkgs, TriggerWatch, TriggerRun} {
		matches, err := SelectHooks(hooks, "", false, trigger)
		if err != nil {
			t.Errorf("unexpected error for %s: %v", trigger, err)
		}
		if len(matches) != 0 {
			t.Errorf("expected no matches for %s, got %d", trigger, len(matches))
		}
	}
}

func TestParseEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "single pair",
			input: []string{"key=value"},
			want:  map[string]string{"key": "value"},
		},
		{
			name:  "value containing equals",
			input: []string{"expr=a=b"},
			want:  map[string]string{"expr": "a=b"},
		},
		{
			name:  "empty value",
			input: []string{"key="},
			want:  map[string]string{"key": ""},
		},
		{
			name:    "missing equals",
			input:   []string{"keyvalue"},
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEnv(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}
