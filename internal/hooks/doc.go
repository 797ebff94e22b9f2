// Package hooks provides post-detection hook execution with placeholder
// substitution.
//
// Hooks are shell commands defined in config that run from the workspace
// root after a detection pass. They enable workflow automation such as
// refreshing an renv lockfile, committing the manifest, or sending
// notifications.
//
// # Hook Selection
//
// Hooks can run automatically or manually:
//
//   - Automatic: hooks whose "on" list covers the trigger run after every
//     matching detection pass ("rpkgs" for one-shot scans, "watch" for
//     watch-mode rescans, "all" for both)
//   - Manual: qdoc hook <name> runs a specific hook; --no-hooks skips all
//
// Example config:
//
//	[hooks.lockfile]
//	command = "Rscript -e 'renv::snapshot()'"
//	on = ["rpkgs"]  # auto-run after one-shot scans
//
//	[hooks.notify]
//	command = "notify-send 'manifest: {outcome}'"
//	# no "on" - only runs via qdoc hook notify
//
// # Placeholder Substitution
//
// Static placeholders available in all hooks:
//
//   - {root}: Absolute workspace root
//   - {manifest}: Absolute manifest path
//   - {outcome}: Detection outcome name (empty for manual runs)
//   - {packages}: Manifest package count
//   - {documents}: Scanned document count
//   - {trigger}: What fired the hook (rpkgs, watch, run)
//
// Custom variables via -a key=value:
//
//   - {key}: Value from -a key=value
//   - {key:-default}: Value with fallback if not provided
//
// # Execution Context
//
// Hooks run with the working directory set to the workspace root. Failures
// after a detection pass are logged as warnings and never change the
// command's exit status; failures of explicitly invoked hooks are returned.
//
// # Stdin Support
//
// Use -a key=- to read stdin content into a variable:
//
//	echo "my content" | qdoc hook myhook -a content=-
package hooks
