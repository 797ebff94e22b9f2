// Package config handles loading and validation of qdoc configuration.
//
// Configuration is read from ~/.config/qdoc/config.toml, with optional
// per-workspace overrides from a .qdoc.toml at the workspace root.
//
// # Configuration Sources (highest priority first)
//
//   - QDOC_ROOT env var: workspace root
//   - .qdoc.toml at the workspace root (per-workspace overrides)
//   - Global config file settings
//   - Default values
//
// The --root flag outranks all of these; it is handled by the CLI layer.
//
// # Key Settings
//
//   - root: Default workspace root when outside a git repository (must be
//     absolute or ~/...)
//   - doc_suffix: Document file suffix (default: ".qmd")
//   - manifest: Manifest file name (default: "R.pkgs")
//   - rpkgs.always_require / rpkgs.exclude: Detection tuning lists
//   - status.depth / status.limit: Repository discovery and concurrency
//   - watch.debounce_ms: Quiet period in watch mode
//
// # Local Overrides
//
// A .qdoc.toml placed at the workspace root overrides scalar settings and
// appends to the detection lists. The workspace root itself cannot be set
// locally. Missing files are not an error; parse and validation failures
// are.
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like
// "." or "..") to avoid confusion about the working directory.
package config
