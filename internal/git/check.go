package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// ErrNotRepository indicates the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// RepoRoot returns the top-level directory of the work tree containing dir.
// Returns ErrNotRepository if dir is not inside a work tree.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", ErrNotRepository
	}
	root := strings.TrimSpace(string(output))
	if root == "" {
		return "", ErrNotRepository
	}
	return root, nil
}

// IsInsideRepo returns true if dir is inside a git work tree.
func IsInsideRepo(ctx context.Context, dir string) bool {
	return runGit(ctx, dir, "rev-parse", "--is-inside-work-tree") == nil
}

// RemoteExists reports whether remote is configured in the repository at dir.
func RemoteExists(ctx context.Context, dir, remote string) bool {
	return runGit(ctx, dir, "remote", "get-url", remote) == nil
}
