package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-workspace config file read from the
// workspace root.
const LocalConfigFileName = ".qdoc.toml"

// LocalConfig holds per-workspace overrides from .qdoc.toml.
// Pointer fields and zero-value strings mean "not set" (inherit from global).
// The workspace root itself cannot be overridden here; it is what located
// this file.
type LocalConfig struct {
	DocSuffix string          `toml:"doc_suffix"`
	Manifest  string          `toml:"manifest"`
	Rpkgs     LocalRpkgs      `toml:"rpkgs"`
	Status    LocalStatus     `toml:"status"`
	Watch     LocalWatch      `toml:"watch"`
	Hooks     map[string]Hook `toml:"hooks"` // merged by name into the global hooks
}

// LocalRpkgs holds detection overrides. Lists are appended to the global
// lists, not replaced.
type LocalRpkgs struct {
	AlwaysRequire []string `toml:"always_require"`
	Exclude       []string `toml:"exclude"`
}

// LocalStatus holds status overrides.
type LocalStatus struct {
	Depth *int `toml:"depth"`
	Limit *int `toml:"limit"`
}

// LocalWatch holds watch overrides.
type LocalWatch struct {
	DebounceMS *int `toml:"debounce_ms"`
}

// LoadLocal reads a per-workspace .qdoc.toml from the given root.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(root string) (*LocalConfig, error) {
	configFile := filepath.Join(root, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if err := validateSuffix(local.DocSuffix, "doc_suffix", configFile); err != nil {
		return nil, err
	}
	if err := validateManifestName(local.Manifest, "manifest", configFile); err != nil {
		return nil, err
	}
	if local.Status.Depth != nil {
		if err := validateCount(*local.Status.Depth, "status.depth", configFile); err != nil {
			return nil, err
		}
	}
	if local.Status.Limit != nil {
		if err := validateCount(*local.Status.Limit, "status.limit", configFile); err != nil {
			return nil, err
		}
	}
	if local.Watch.DebounceMS != nil {
		if err := validateCount(*local.Watch.DebounceMS, "watch.debounce_ms", configFile); err != nil {
			return nil, err
		}
	}
	if err := validateHooks(local.Hooks, configFile); err != nil {
		return nil, err
	}

	return &local, nil
}

// defaultLocalConfig is the template for qdoc config init --local
const defaultLocalConfig = `# qdoc local config (per-workspace overrides)
# Place this file at the root of your workspace.
# Settings here override the global ~/.config/qdoc/config.toml for this
# workspace only.

# Document suffix
# doc_suffix = ".qmd"

# Manifest file name
# manifest = "R.pkgs"

# Detection settings (lists are added to the global lists)
# [rpkgs]
# always_require = ["quarto"]
# exclude = ["devtools"]

# Status settings
# [status]
# depth = 2
# limit = 4

# Watch settings
# [watch]
# debounce_ms = 250

# Hooks (merged by name with the global hooks, this file wins)
# [hooks.lockfile]
# command = "Rscript -e 'renv::snapshot()'"
# on = ["rpkgs"]
`

// DefaultLocalConfig returns the commented per-workspace config template.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}

// InitLocal creates a default .qdoc.toml at the given workspace root.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func InitLocal(root string, force bool) (string, error) {
	path := filepath.Join(root, LocalConfigFileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("local config file already exists: " + path + " (use -f to overwrite)")
		}
	}

	if err := os.WriteFile(path, []byte(defaultLocalConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
