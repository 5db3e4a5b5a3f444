//go:build integration

package main

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/git-removed-branches/internal/config"
	"github.com/raphi011/git-removed-branches/internal/report"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1", "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

// setupRemovedBranches builds a bare "origin" and a clone where:
//   - feature/fast-forwarded, #333-work were pushed and deleted upstream (merged)
//   - chore/local-name-deleted was pushed as chore/remote-name-deleted, then deleted
//   - chore/local-name-persistent was pushed as chore/remote-name-persistent and kept
//   - no-ff has an unmerged commit, pushed and deleted upstream
//
// Returns the clone path.
func setupRemovedBranches(t *testing.T) string {
	t.Helper()
	tmp := resolvePath(t, t.TempDir())
	bare := filepath.Join(tmp, "bare")
	work := filepath.Join(tmp, "working")

	if err := os.MkdirAll(bare, 0755); err != nil {
		t.Fatal(err)
	}
	gitIn(t, bare, "init", "--bare", "--initial-branch=master")
	gitIn(t, tmp, "clone", "bare", "working")
	gitIn(t, work, "symbolic-ref", "HEAD", "refs/heads/master")
	gitIn(t, work, "config", "user.email", "test@test.com")
	gitIn(t, work, "config", "user.name", "Test User")
	gitIn(t, work, "config", "commit.gpgsign", "false")

	file := filepath.Join(work, "lolipop")
	if err := os.WriteFile(file, []byte("lolipop content"), 0644); err != nil {
		t.Fatal(err)
	}
	gitIn(t, work, "add", "lolipop")
	gitIn(t, work, "commit", "-m", "initial commit")

	for _, b := range []string{"feature/fast-forwarded", "#333-work", "chore/local-name-deleted", "chore/local-name-persistent", "no-ff"} {
		gitIn(t, work, "branch", b)
	}

	gitIn(t, work, "checkout", "no-ff")
	if err := os.WriteFile(file, []byte("lolipop content changed"), 0644); err != nil {
		t.Fatal(err)
	}
	gitIn(t, work, "commit", "-a", "-m", "second commit")

	gitIn(t, work, "push", "origin", "-u", "master")
	gitIn(t, work, "push", "origin", "-u", "feature/fast-forwarded")
	gitIn(t, work, "push", "origin", "-u", "#333-work")
	gitIn(t, work, "push", "origin", "-u", "chore/local-name-deleted:chore/remote-name-deleted")
	gitIn(t, work, "push", "origin", "-u", "chore/local-name-persistent:chore/remote-name-persistent")
	gitIn(t, work, "push", "origin", "-u", "no-ff")

	gitIn(t, work, "push", "origin", ":feature/fast-forwarded")
	gitIn(t, work, "push", "origin", ":no-ff")
	gitIn(t, work, "push", "origin", ":#333-work")
	gitIn(t, work, "push", "origin", ":chore/remote-name-deleted")

	gitIn(t, work, "checkout", "master")
	return work
}

func localBranches(t *testing.T, dir string) []string {
	t.Helper()
	out := gitIn(t, dir, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	return strings.Fields(out)
}

func TestRemovedBranches_DryRun(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)
	ctx, stdout, _ := testContext(t, work, config.Default())

	if err := runRoot(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	out := ansi.Strip(stdout.String())

	for _, want := range []string{
		"Found removed branches:",
		"  - chore/local-name-deleted",
		"  - #333-work",
		"  - feature/fast-forwarded",
		"  - no-ff",
		"INFO: To remove all found branches use --prune flag",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "chore/local-name-persistent") {
		t.Errorf("branch with an existing remote branch listed:\n%s", out)
	}
	if got := localBranches(t, work); len(got) != 6 {
		t.Errorf("dry run deleted branches, left %v", got)
	}
}

func TestRemovedBranches_PruneThenForce(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)

	ctx, stdout, _ := testContext(t, work, config.Default())
	err := runRoot(ctx, "--prune")
	if !errors.Is(err, errNotAllRemoved) {
		t.Fatalf("--prune = %v, want errNotAllRemoved (no-ff is unmerged)", err)
	}
	out := ansi.Strip(stdout.String())
	for _, want := range []string{
		"Not all branches are removed:",
		"  - no-ff",
		"INFO: To force removal use --force flag",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	want := []string{"chore/local-name-persistent", "master", "no-ff"}
	if got := localBranches(t, work); !slices.Equal(got, want) {
		t.Errorf("branches after --prune = %v, want %v", got, want)
	}

	ctx, stdout, _ = testContext(t, work, config.Default())
	if err := runRoot(ctx, "--force", "-p"); err != nil {
		t.Fatalf("--force --prune = %v", err)
	}
	if out := ansi.Strip(stdout.String()); !strings.Contains(out, "INFO: All branches are removed") {
		t.Errorf("output missing success summary:\n%s", out)
	}
	want = []string{"chore/local-name-persistent", "master"}
	if got := localBranches(t, work); !slices.Equal(got, want) {
		t.Errorf("branches after --force = %v, want %v", got, want)
	}

	ctx, stdout, _ = testContext(t, work, config.Default())
	if err := runRoot(ctx); err != nil {
		t.Fatalf("final dry run = %v", err)
	}
	if out := ansi.Strip(stdout.String()); !strings.Contains(out, "No removed branches found") {
		t.Errorf("output = %q, want nothing found", out)
	}
}

func TestRemovedBranches_ForceFromConfig(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)

	cfg := config.Default()
	cfg.Force = true
	ctx, _, _ := testContext(t, work, cfg)
	if err := runRoot(ctx, "--do-it"); err != nil {
		t.Fatalf("--do-it with force config = %v", err)
	}
	want := []string{"chore/local-name-persistent", "master"}
	if got := localBranches(t, work); !slices.Equal(got, want) {
		t.Errorf("branches = %v, want %v", got, want)
	}
}

func TestRemovedBranches_JSON(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)
	ctx, stdout, _ := testContext(t, work, config.Default())

	if err := runRoot(ctx, "--json"); err != nil {
		t.Fatalf("--json = %v", err)
	}

	var rep report.Report
	if err := json.Unmarshal(stdout.Bytes(), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if rep.Remote != "origin" || !rep.LiveAvailable {
		t.Errorf("remote=%q live=%v, want origin/true", rep.Remote, rep.LiveAvailable)
	}
	// for-each-ref sorts by refname
	want := []string{"#333-work", "chore/local-name-deleted", "feature/fast-forwarded", "no-ff"}
	if !slices.Equal(rep.Candidates, want) {
		t.Errorf("candidates = %v, want %v", rep.Candidates, want)
	}
	if rep.Mode != "dry-run" || len(rep.Outcomes) != len(want) {
		t.Errorf("mode=%q outcomes=%d, want dry-run with %d outcomes", rep.Mode, len(rep.Outcomes), len(want))
	}
}

func TestRemovedBranches_YAML(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)
	ctx, stdout, _ := testContext(t, work, config.Default())

	if err := runRoot(ctx, "--yaml", "--prune"); !errors.Is(err, errNotAllRemoved) {
		t.Fatalf("--yaml --prune = %v, want errNotAllRemoved", err)
	}

	var rep report.Report
	if err := yaml.Unmarshal(stdout.Bytes(), &rep); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, stdout.String())
	}
	if rep.Mode != "prune" || rep.Summary.Status != "partial-failure" {
		t.Errorf("mode=%q status=%q, want prune/partial-failure", rep.Mode, rep.Summary.Status)
	}
	if !slices.Equal(rep.Summary.Failed, []string{"no-ff"}) {
		t.Errorf("failed = %v, want [no-ff]", rep.Summary.Failed)
	}
	if strings.Contains(stdout.String(), "Found removed branches:") {
		t.Errorf("text report mixed into YAML:\n%s", stdout.String())
	}
}

func TestRemovedBranches_UnreachableRemote(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)

	// Cached tracking refs still know chore/remote-name-persistent and master
	gitIn(t, work, "remote", "set-url", "origin", filepath.Join(t.TempDir(), "missing"))

	ctx, stdout, _ := testContext(t, work, config.Default())
	if err := runRoot(ctx); err != nil {
		t.Fatalf("dry run = %v", err)
	}
	out := ansi.Strip(stdout.String())
	if !strings.Contains(out, "WARNING: Unable to connect to remote host") {
		t.Errorf("output missing unreachable warning:\n%s", out)
	}
	if strings.Contains(out, "outdated") {
		t.Errorf("outdated warning shown without live listing:\n%s", out)
	}
	if !strings.Contains(out, "  - no-ff") || strings.Contains(out, "chore/local-name-persistent") {
		t.Errorf("cache fallback produced wrong candidates:\n%s", out)
	}
}

func TestRemovedBranches_OutdatedCache(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)

	// Delete upstream without updating the clone's tracking refs
	bare := filepath.Join(filepath.Dir(work), "bare")
	gitIn(t, bare, "branch", "-D", "chore/remote-name-persistent")

	ctx, stdout, _ := testContext(t, work, config.Default())
	if err := runRoot(ctx, "-r", "origin"); err != nil {
		t.Fatalf("dry run = %v", err)
	}
	out := ansi.Strip(stdout.String())
	for _, want := range []string{
		`WARNING: Your git repository is outdated, please run "git fetch -p origin"`,
		"  - chore/remote-name-persistent",
		"  - chore/local-name-persistent",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRemovedBranches_OtherRemote(t *testing.T) {
	t.Parallel()
	work := setupRemovedBranches(t)

	// No branch tracks "upstream", so nothing is stale relative to it
	ctx, stdout, stderr := testContext(t, work, config.Config{Remote: "upstream"})
	if err := runRoot(ctx); err != nil {
		t.Fatalf("dry run = %v", err)
	}
	if out := ansi.Strip(stdout.String()); !strings.Contains(out, "No removed branches found") {
		t.Errorf("output = %q, want nothing found for another remote", out)
	}
	if want := `WARNING: Remote "upstream" is not configured in this repository`; !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}

	// A configured remote gets no such warning
	ctx, _, stderr = testContext(t, work, config.Default())
	if err := runRoot(ctx); err != nil {
		t.Fatalf("dry run = %v", err)
	}
	if strings.Contains(stderr.String(), "not configured") {
		t.Errorf("stderr = %q, want no missing-remote warning for origin", stderr.String())
	}
}

func TestRemovedBranches_Copy(t *testing.T) {
	work := setupRemovedBranches(t)

	var copied string
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	ctx, _, _ := testContext(t, work, config.Default())
	if err := runRoot(ctx, "--copy"); err != nil {
		t.Fatalf("--copy = %v", err)
	}
	want := "#333-work\nchore/local-name-deleted\nfeature/fast-forwarded\nno-ff"
	if copied != want {
		t.Errorf("clipboard = %q, want %q", copied, want)
	}
}
