package config

// MergeLocal merges per-workspace overrides into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Shallow copy global. Root is global-only: the workspace root located
	// the local file in the first place.
	merged := *global

	if local.DocSuffix != "" {
		merged.DocSuffix = local.DocSuffix
	}
	if local.Manifest != "" {
		merged.Manifest = local.Manifest
	}

	// Detection lists append with dedup
	if len(local.Rpkgs.AlwaysRequire) > 0 {
		merged.Rpkgs.AlwaysRequire = appendUnique(global.Rpkgs.AlwaysRequire, local.Rpkgs.AlwaysRequire)
	}
	if len(local.Rpkgs.Exclude) > 0 {
		merged.Rpkgs.Exclude = appendUnique(global.Rpkgs.Exclude, local.Rpkgs.Exclude)
	}

	// Numeric settings replace when explicitly set
	if local.Status.Depth != nil {
		merged.Status.Depth = *local.Status.Depth
	}
	if local.Status.Limit != nil {
		merged.Status.Limit = *local.Status.Limit
	}
	if local.Watch.DebounceMS != nil {
		merged.Watch.DebounceMS = *local.Watch.DebounceMS
	}

	// Hooks merge by name, the local definition winning on collision
	if len(local.Hooks) > 0 {
		merged.Hooks = make(map[string]Hook, len(global.Hooks)+len(local.Hooks))
		for name, hook := range global.Hooks {
			merged.Hooks[name] = hook
		}
		for name, hook := range local.Hooks {
			merged.Hooks[name] = hook
		}
	}

	return &merged
}

// appendUnique appends items from extra to base, skipping duplicates.
// Returns a new slice (never mutates base).
func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}

	result := make([]string, len(base))
	copy(result, base)

	for _, v := range extra {
		if !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}

	return result
}
