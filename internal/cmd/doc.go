// Package cmd provides helpers for executing shell commands with proper error handling.
//
// Commands run under a [context.Context]; the logger attached to it echoes
// each invocation in verbose mode. Failures are returned as [*ExitError],
// which carries the exit status and the trimmed stderr of the command.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, "", "git", "ls-remote", "--heads", "origin")
//	if err != nil {
//	    if cmd.ExitCode(err) == 128 {
//	        // remote could not be reached
//	    }
//	}
//
// # Design Notes
//
// git-removed-branches shells out to the git CLI rather than using a Go git
// library, so remotes resolve through the user's own SSH keys, credential
// helpers and config.
package cmd
