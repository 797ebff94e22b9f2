// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// The helpers wrap [os/exec.Cmd] to capture stderr and fold it into the
// returned error, so a failing git invocation surfaces its actual message
// instead of "exit status 128".
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "ls-files"); err != nil {
//	    // err carries git's stderr output if there was any
//	    return fmt.Errorf("listing tracked files: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, dir, "git", "rev-parse", "--show-toplevel")
//
// # Design Notes
//
// qdoc shells out to the git CLI rather than using a Go git library. The
// CLI is already required by the documentation workflow, respects the
// user's configuration (worktrees, sparse checkouts, credential helpers)
// and keeps this module's dependency surface small.
package cmd
