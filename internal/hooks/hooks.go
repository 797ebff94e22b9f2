package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/qdoc-dev/qdoc/internal/config"
	"github.com/qdoc-dev/qdoc/internal/log"
	"github.com/qdoc-dev/qdoc/internal/output"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// Single quotes preserve everything literally except single quotes themselves.
	// To include a single quote, we end the quoted string, add an escaped quote, and restart.
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Trigger identifies what fired a hook.
type Trigger string

const (
	TriggerRpkgs Trigger = "rpkgs" // one-shot detection pass
	TriggerWatch Trigger = "watch" // watch-mode rescan
	TriggerRun   Trigger = "run"   // explicit qdoc hook invocation
)

// Context holds the values for placeholder substitution.
type Context struct {
	Root      string            // absolute workspace root
	Manifest  string            // absolute manifest path
	Outcome   string            // detection outcome name, empty outside detection
	Packages  int               // manifest package count
	Documents int               // scanned document count
	Trigger   string            // what fired the hook (rpkgs, watch, run)
	Env       map[string]string // custom variables from -a key=value flags
	DryRun    bool              // if true, print command instead of executing
}

// Match represents a hook selected to run.
type Match struct {
	Hook *config.Hook
	Name string
}

// SelectHooks determines which hooks to run for a trigger.
// If hookName is given, only that hook runs regardless of its "on" list.
// Otherwise every hook whose "on" list covers the trigger runs, in name
// order. Returns an error if the named hook doesn't exist.
func SelectHooks(hooks map[string]config.Hook, hookName string, noHooks bool, trigger Trigger) ([]Match, error) {
	if noHooks {
		return nil, nil
	}

	if hookName != "" {
		hook, exists := hooks[hookName]
		if !exists {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []Match{{Hook: &hook, Name: hookName}}, nil
	}

	return findMatchingHooks(hooks, trigger), nil
}

// findMatchingHooks returns the hooks whose "on" list covers the trigger,
// sorted by name so runs are deterministic. Hooks without "on" are skipped;
// they only run via an explicit name.
func findMatchingHooks(hooks map[string]config.Hook, trigger Trigger) []Match {
	var names []string
	for name, hook := range hooks {
		if len(hook.On) > 0 && hookMatchesTrigger(hook, trigger) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	matches := make([]Match, 0, len(names))
	for _, name := range names {
		hook := hooks[name]
		matches = append(matches, Match{Hook: &hook, Name: name})
	}
	return matches
}

// hookMatchesTrigger returns true if trigger is in the hook's "on" list.
// The special value "all" matches every trigger.
func hookMatchesTrigger(hook config.Hook, trigger Trigger) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(trigger) {
			return true
		}
	}
	return false
}

// RunAllNonFatal runs all matched hooks, logging failures as warnings
// instead of returning errors. Detection outcomes never depend on hooks.
func RunAllNonFatal(ctx context.Context, matches []Match, hctx Context) {
	l := log.FromContext(ctx)
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hctx); err != nil {
			l.Printf("Warning: hook %q failed: %v\n", match.Name, err)
		}
	}
}

// RunSingle runs one hook by name. Used by qdoc hook for explicit
// invocations, where a failure is the command's result.
func RunSingle(ctx context.Context, name string, hook *config.Hook, hctx Context) error {
	return runHook(ctx, name, hook, hctx)
}

// runHook executes a single hook with variable substitution, from the
// workspace root.
func runHook(ctx context.Context, name string, hook *config.Hook, hctx Context) error {
	l := log.FromContext(ctx)
	cmdStr := SubstitutePlaceholders(hook.Command, hctx)

	if hctx.DryRun {
		output.FromContext(ctx).Printf("[dry-run] %s: %s\n", name, cmdStr)
		return nil
	}

	l.Printf("Running hook %q...\n", name)

	shellCmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	shellCmd.Dir = hctx.Root
	shellCmd.Stdout = os.Stdout
	shellCmd.Stderr = os.Stderr
	shellCmd.Stdin = os.Stdin

	if err := shellCmd.Run(); err != nil {
		return err
	}

	if hook.Description != "" {
		l.Printf("  done: %s\n", hook.Description)
	}
	return nil
}

// ParseEnv parses a slice of "key=value" strings into a map.
// Returns an error if any entry doesn't contain "=".
func ParseEnv(envSlice []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, e := range envSlice {
		idx := strings.Index(e, "=")
		if idx == -1 {
			return nil, fmt.Errorf("invalid arg format %q: expected KEY=VALUE", e)
		}
		key := e[:idx]
		value := e[idx+1:]
		if key == "" {
			return nil, fmt.Errorf("invalid arg format %q: key cannot be empty", e)
		}
		result[key] = value
	}
	return result, nil
}

// readStdinIfPiped reads all content from stdin if it's piped (not a TTY).
// Returns empty string and nil if stdin is a TTY (interactive).
func readStdinIfPiped() (string, error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// ParseEnvWithStdin parses a slice of "key=value" strings into a map.
// If any value is "-", reads stdin content and assigns it to all such keys.
// Returns an error if stdin is requested but not piped or empty.
func ParseEnvWithStdin(envSlice []string) (map[string]string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, e := range envSlice {
		idx := strings.Index(e, "=")
		if idx == -1 {
			return nil, fmt.Errorf("invalid arg format %q: expected KEY=VALUE", e)
		}
		key := e[:idx]
		value := e[idx+1:]
		if key == "" {
			return nil, fmt.Errorf("invalid arg format %q: key cannot be empty", e)
		}
		if value == "-" {
			stdinKeys = append(stdinKeys, key)
		} else {
			result[key] = value
		}
	}

	// If any keys need stdin, read it once
	if len(stdinKeys) > 0 {
		content, err := readStdinIfPiped()
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default} patterns
// for custom variables, expanded after the static replacements.
// Supported formats:
//   - {key}           - value is shell-quoted
//   - {key:raw}       - value is used as-is (no quoting)
//   - {key:-default}  - value is shell-quoted, uses default if key not set
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values
// from Context. Values are escaped to prevent command injection.
//
// Static placeholders: {root}, {manifest}, {outcome}, {packages},
// {documents}, {trigger}
// Custom placeholders (from Context.Env):
//   - {key}          - shell-quoted value
//   - {key:raw}      - unquoted value (for embedding in existing quotes)
//   - {key:-default} - shell-quoted value with default if key missing
func SubstitutePlaceholders(command string, hctx Context) string {
	replacements := map[string]string{
		"{root}":      shellQuote(hctx.Root),
		"{manifest}":  shellQuote(hctx.Manifest),
		"{outcome}":   shellQuote(hctx.Outcome),
		"{packages}":  shellQuote(strconv.Itoa(hctx.Packages)),
		"{documents}": shellQuote(strconv.Itoa(hctx.Documents)),
		"{trigger}":   shellQuote(hctx.Trigger),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Then the custom placeholders with optional defaults
	result = envPlaceholderRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatch := envPlaceholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		defaultVal := submatch[3] // empty string if no default specified

		if hctx.Env != nil {
			if val, ok := hctx.Env[key]; ok {
				if isRaw {
					return val
				}
				return shellQuote(val)
			}
		}

		if isRaw {
			return defaultVal
		}
		return shellQuote(defaultVal)
	})

	return result
}
