// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather than
// using Go git libraries. This approach is simpler, more reliable, and ensures
// compatibility with user configurations (SSH keys, credential helpers, aliases).
//
// # Workspace Operations
//
// Resolving the documentation workspace and its tracked files:
//
//   - [Toplevel]: Find the repository root containing a directory
//   - [LsFiles]: List tracked files, optionally filtered by pathspec
//
// # Status Operations
//
// Working tree state across nested repositories:
//
//   - [Status]: Branch, ahead/behind and change counts for one repository
//   - [FindRepos]: Discover git repositories under a workspace root
//   - [LoadStatuses]: Collect statuses from multiple repos in parallel
//
// Per-repo status failures surface as [LoadWarning] values rather than
// errors so one broken checkout never hides the rest of the workspace.
package git
