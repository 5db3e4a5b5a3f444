package git

import (
	"context"

	"github.com/raphi011/git-removed-branches/internal/cmd"
)

// noPromptEnv keeps git from blocking on credential or host-key prompts
// during network queries; an unanswerable prompt counts as a failed query.
var noPromptEnv = []string{"GIT_TERMINAL_PROMPT=0", "GIT_SSH_COMMAND=ssh -o BatchMode=yes"}

// runGit executes a git command in dir with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, dir, "git", args...)
}

// outputGit executes a git command in dir and returns stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, dir, "git", args...)
}

// outputGitNoPrompt is outputGit for commands that talk to a remote.
func outputGitNoPrompt(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContextEnv(ctx, dir, noPromptEnv, "git", args...)
}
