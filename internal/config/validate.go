package config

import (
	"fmt"
	"strings"
)

// validate checks a fully parsed global config before defaults are applied.
func validate(cfg *Config, source string) error {
	if err := ValidatePath(cfg.Root, "root"); err != nil {
		return err
	}
	if err := validateSuffix(cfg.DocSuffix, "doc_suffix", source); err != nil {
		return err
	}
	if err := validateManifestName(cfg.Manifest, "manifest", source); err != nil {
		return err
	}
	if err := validateCount(cfg.Status.Depth, "status.depth", source); err != nil {
		return err
	}
	if err := validateCount(cfg.Status.Limit, "status.limit", source); err != nil {
		return err
	}
	if err := validateCount(cfg.Watch.DebounceMS, "watch.debounce_ms", source); err != nil {
		return err
	}
	return validateHooks(cfg.Hooks, source)
}

// validateHooks checks that every defined hook carries a command.
func validateHooks(hooks map[string]Hook, source string) error {
	for name, hook := range hooks {
		if strings.TrimSpace(hook.Command) == "" {
			return fmt.Errorf("invalid hook %q%s: command is required", name, in(source))
		}
	}
	return nil
}

// validateSuffix checks that a document suffix (if set) names an extension.
func validateSuffix(suffix, field, source string) error {
	if suffix == "" {
		return nil
	}
	if !strings.HasPrefix(suffix, ".") || len(suffix) < 2 {
		return fmt.Errorf("invalid %s %q%s: must start with a dot, like %q", field, suffix, in(source), DefaultDocSuffix)
	}
	return nil
}

// validateManifestName checks that a manifest name (if set) is a bare file
// name without path separators.
func validateManifestName(name, field, source string) error {
	if name == "" {
		return nil
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid %s %q%s: must be a bare file name", field, name, in(source))
	}
	return nil
}

// validateCount checks that a numeric setting is not negative. Zero means
// "use the default".
func validateCount(v int, field, source string) error {
	if v < 0 {
		return fmt.Errorf("invalid %s %d%s: must not be negative", field, v, in(source))
	}
	return nil
}

// in formats the config file location for error messages; empty for the
// global config.
func in(source string) string {
	if source == "" {
		return ""
	}
	return " in " + source
}
