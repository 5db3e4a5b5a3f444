package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/git-removed-branches/internal/log"
	"github.com/raphi011/git-removed-branches/internal/stale"
)

const (
	headsPrefix   = "refs/heads/"
	remotesPrefix = "refs/remotes/"
)

// ListLocalBranches returns every local branch with its upstream configuration.
// A branch whose config lookup fails is returned without an upstream.
func ListLocalBranches(ctx context.Context, dir string) ([]stale.LocalBranch, error) {
	output, err := outputGit(ctx, dir, "for-each-ref", "--format=%(refname)", headsPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list local branches: %w", err)
	}

	names := parseRefNames(output, headsPrefix)
	branches := make([]stale.LocalBranch, 0, len(names))
	for _, name := range names {
		branches = append(branches, stale.LocalBranch{
			Name:           name,
			UpstreamRemote: branchConfig(ctx, dir, name, "remote"),
			UpstreamBranch: strings.TrimPrefix(branchConfig(ctx, dir, name, "merge"), headsPrefix),
		})
	}
	return branches, nil
}

// branchConfig reads branch.<name>.<key>, returning "" when unset or on error.
func branchConfig(ctx context.Context, dir, branch, key string) string {
	output, err := outputGit(ctx, dir, "config", "--get", "branch."+branch+"."+key)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// ListRemoteTrackingBranches returns the names of the cached remote-tracking
// branches of remote, as written by the last fetch. HEAD is excluded.
func ListRemoteTrackingBranches(ctx context.Context, dir, remote string) ([]string, error) {
	prefix := remotesPrefix + remote + "/"
	output, err := outputGit(ctx, dir, "for-each-ref", "--format=%(refname)", prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote-tracking branches: %w", err)
	}

	names := parseRefNames(output, prefix)
	out := names[:0]
	for _, n := range names {
		if n != stale.HeadRef {
			out = append(out, n)
		}
	}
	return out, nil
}

// ListLiveRemoteBranches asks remote for its current branches.
// Any failure (network, auth, unknown remote) yields stale.Unavailable; the
// cause is only logged in verbose mode.
func ListLiveRemoteBranches(ctx context.Context, dir, remote string) stale.LiveListing {
	output, err := outputGitNoPrompt(ctx, dir, "ls-remote", "--heads", remote)
	if err != nil {
		log.FromContext(ctx).Debug("live query failed", "remote", remote, "error", err)
		return stale.Unavailable()
	}
	return stale.Live(parseLsRemoteHeads(output))
}

// DeleteBranch deletes a local branch. Without force git refuses to delete
// branches holding commits not merged into their upstream or HEAD.
func DeleteBranch(ctx context.Context, dir, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	return runGit(ctx, dir, "branch", flag, name)
}

// parseRefNames extracts names from "for-each-ref --format=%(refname)"
// output, keeping only refs under prefix.
func parseRefNames(output []byte, prefix string) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		ref := strings.TrimSpace(scanner.Text())
		name, ok := strings.CutPrefix(ref, prefix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// parseLsRemoteHeads extracts branch names from "ls-remote" output lines of
// the form "<sha>\trefs/heads/<name>". Tags and other refs are skipped.
func parseLsRemoteHeads(output []byte) []string {
	names := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		name, ok := strings.CutPrefix(fields[1], headsPrefix)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
