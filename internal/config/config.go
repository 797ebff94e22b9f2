package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults applied when the config file is missing or leaves a field unset.
const (
	DefaultDocSuffix   = ".qmd"
	DefaultManifest    = "R.pkgs"
	DefaultStatusDepth = 3
	DefaultStatusLimit = 8
	DefaultDebounceMS  = 500
)

// Hook defines a shell command run after a detection pass.
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"` // triggers this hook runs on (empty = only via qdoc hook)
}

// RpkgsConfig tunes manifest detection.
type RpkgsConfig struct {
	AlwaysRequire []string `toml:"always_require"` // added to every manifest
	Exclude       []string `toml:"exclude"`        // filtered from extraction
}

// StatusConfig tunes repository discovery and status collection.
type StatusConfig struct {
	Depth int `toml:"depth"` // how many directory levels below root to search
	Limit int `toml:"limit"` // concurrent status queries
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"` // quiet period before a rescan
}

// Config holds the qdoc configuration.
type Config struct {
	Root      string          `toml:"root"`       // optional: default workspace root
	DocSuffix string          `toml:"doc_suffix"` // document file suffix
	Manifest  string          `toml:"manifest"`   // manifest file name
	Rpkgs     RpkgsConfig     `toml:"rpkgs"`
	Status    StatusConfig    `toml:"status"`
	Watch     WatchConfig     `toml:"watch"`
	Hooks     map[string]Hook `toml:"hooks"` // parsed from [hooks.NAME] sections
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DocSuffix: DefaultDocSuffix,
		Manifest:  DefaultManifest,
		Status: StatusConfig{
			Depth: DefaultStatusDepth,
			Limit: DefaultStatusLimit,
		},
		Watch: WatchConfig{
			DebounceMS: DefaultDebounceMS,
		},
	}
}

// ValidatePath checks that the path is absolute or starts with ~.
// Returns error if path is relative (like "." or "..").
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	// Allow ~ paths
	if len(path) >= 1 && path[0] == '~' {
		return nil
	}
	// Must be absolute
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the location of the global config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qdoc", "config.toml"), nil
}

// Load reads config from ~/.config/qdoc/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
// QDOC_ROOT overrides the configured root when set.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(&loaded, ""); err != nil {
		return cfg, err
	}

	// Expand ~ in root (shell doesn't expand in config files)
	if loaded.Root != "" {
		expanded, err := expandPath(loaded.Root)
		if err != nil {
			return cfg, fmt.Errorf("expand root: %w", err)
		}
		loaded.Root = expanded
	}

	// Use defaults for unset values
	if loaded.DocSuffix == "" {
		loaded.DocSuffix = DefaultDocSuffix
	}
	if loaded.Manifest == "" {
		loaded.Manifest = DefaultManifest
	}
	if loaded.Status.Depth == 0 {
		loaded.Status.Depth = DefaultStatusDepth
	}
	if loaded.Status.Limit == 0 {
		loaded.Status.Limit = DefaultStatusLimit
	}
	if loaded.Watch.DebounceMS == 0 {
		loaded.Watch.DebounceMS = DefaultDebounceMS
	}

	return applyEnv(loaded)
}

// applyEnv overlays environment overrides onto cfg.
func applyEnv(cfg Config) (Config, error) {
	root := os.Getenv("QDOC_ROOT")
	if root == "" {
		return cfg, nil
	}
	if err := ValidatePath(root, "QDOC_ROOT"); err != nil {
		return cfg, err
	}
	expanded, err := expandPath(root)
	if err != nil {
		return cfg, fmt.Errorf("expand QDOC_ROOT: %w", err)
	}
	cfg.Root = expanded
	return cfg, nil
}

const defaultConfig = `# qdoc configuration

# Default workspace root when qdoc runs outside a git repository
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# The --root flag and the QDOC_ROOT environment variable take precedence.
# root = "~/Documents/research"

# Suffix of the document files qdoc scans
doc_suffix = ".qmd"

# Name of the package manifest written at the workspace root
manifest = "R.pkgs"

# Manifest detection settings
#
# [rpkgs]
# always_require = []   # packages added to every manifest, e.g. ["quarto"]
# exclude = []          # names never written to the manifest

# Repository status settings for "qdoc status"
#
# [status]
# depth = 3    # directory levels below root searched for repositories
# limit = 8    # concurrent git status queries

# Watch mode settings for "qdoc rpkgs --watch"
#
# [watch]
# debounce_ms = 500    # quiet period after a change before rescanning

# Hooks - shell commands run from the workspace root after a detection pass
#
# Hooks with "on" run automatically for matching triggers: "rpkgs" after a
# one-shot scan, "watch" after a watch-mode rescan, "all" for both.
# Hooks without "on" only run when called explicitly with "qdoc hook NAME".
#
# Placeholders: {root} {manifest} {outcome} {packages} {documents} {trigger}
# plus custom ones passed with "qdoc hook NAME -a key=value".
#
# [hooks.lockfile]
# command = "Rscript -e 'renv::snapshot()'"
# description = "Refresh renv.lock after the manifest changes"
# on = ["rpkgs"]
`

// DefaultConfig returns the commented default global config template.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/qdoc/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path + " (use -f to overwrite)")
		}
	}

	// Create directory
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Write default config
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
