// Package doctor diagnoses a qdoc workspace and optionally repairs it.
//
// The doctor package detects issues including:
//
//   - Config issues: global or per-workspace config files that fail to
//     parse or validate.
//
//   - Document issues: tracked documents that cannot be read, and front
//     matter blocks that are not valid YAML.
//
//   - Manifest issues: a package manifest that is missing, stale, or out
//     of step with what detection over the current document set would
//     write.
//
// # Usage
//
// Run diagnostics:
//
//	err := doctor.Run(ctx, root, cfg, false)  // check only
//	err := doctor.Run(ctx, root, cfg, true)   // check and fix
//
// # Issue Categories
//
// Issues are grouped into three categories:
//
//   - [CategoryConfig]: Problems with config files
//   - [CategoryDocument]: Problems with workspace documents
//   - [CategoryManifest]: Manifest drift
//
// Only manifest drift is fixable: --fix rewrites or removes the manifest
// the same way a detection run would. Config and document issues always
// need a manual edit.
package doctor
