// Package git provides git operations via shell commands.
//
// All operations call the git CLI directly rather than using a Go git
// library, so remotes resolve through the user's SSH keys, credential helpers
// and aliases.
//
// # Branch Sources
//
// Three independent listings feed stale-branch detection:
//
//   - [ListLocalBranches]: local branches with branch.<name>.remote/merge
//   - [ListRemoteTrackingBranches]: refs/remotes/<remote>/*, the fetch cache
//   - [ListLiveRemoteBranches]: "git ls-remote --heads <remote>"
//
// The live listing is the only network operation. Its failure is not an
// error: it returns stale.Unavailable so callers fall back to the cache.
// Network queries run with GIT_TERMINAL_PROMPT=0 so a missing credential
// fails fast instead of waiting for input.
//
// # Repository Checks
//
//   - [CheckGit]: git is on PATH
//   - [RepoRoot]: the working directory is inside a work tree
//
// # Deletion
//
// [DeleteBranch] runs "git branch -d", or "-D" when forced.
package git
