package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/raphi011/git-removed-branches/internal/config"
	"github.com/raphi011/git-removed-branches/internal/git"
	"github.com/raphi011/git-removed-branches/internal/log"
	"github.com/raphi011/git-removed-branches/internal/output"
	"github.com/raphi011/git-removed-branches/internal/prune"
	"github.com/raphi011/git-removed-branches/internal/report"
	"github.com/raphi011/git-removed-branches/internal/stale"
	"github.com/raphi011/git-removed-branches/internal/ui/progress"
	"github.com/raphi011/git-removed-branches/internal/ui/prompt"
)

// Terminal interaction, replaced in tests.
var (
	stdinIsTerminal  = func() bool { return progress.Enabled(os.Stdin) }
	stderrIsTerminal = func() bool { return progress.Enabled(os.Stderr) }
	selectBranches   = prompt.MultiSelect
	confirmPrune     = prompt.Confirm
	writeClipboard   = clipboard.WriteAll
)

func runRemovedBranches(ctx context.Context, opts *options) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)
	cfg := config.FromContext(ctx)

	root, err := git.RepoRoot(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return err
	}
	// An unknown remote has no tracking refs and no live listing
	if !git.RemoteExists(ctx, root, opts.remote) {
		l.Printf("WARNING: Remote %q is not configured in this repository\n", opts.remote)
	}

	locals, tracking, live, err := gatherBranches(ctx, root, opts)
	if err != nil {
		return err
	}

	res := stale.Reconcile(locals, tracking, live, opts.remote)
	l.Debug("reconciled",
		"source", res.Source,
		"locals", len(locals),
		"tracking", len(tracking),
		"candidates", len(res.Candidates),
		"divergence", len(res.Divergence))

	popts := prune.Options{Mode: prune.DryRun, Force: opts.force}
	if opts.prune {
		popts.Mode = prune.Delete
	}

	rep := report.New(opts.remote, res, popts, nil)
	if !opts.structured() {
		if !opts.quiet {
			report.Warnings(out, rep)
		}
		report.Candidates(out, rep)
	}

	if opts.copy && len(res.Candidates) > 0 {
		if err := writeClipboard(strings.Join(res.Candidates, "\n")); err != nil {
			l.Printf("WARNING: failed to copy to clipboard: %v\n", err)
		} else {
			l.Debug("copied to clipboard", "branches", len(res.Candidates))
		}
	}

	targets, proceed, err := chooseTargets(ctx, opts, cfg, popts.Mode, res.Candidates)
	if err != nil {
		return err
	}
	if !proceed {
		popts.Mode = prune.DryRun
		targets = res.Candidates
	}

	outcomes := deleteBranches(ctx, root, targets, popts, opts)
	rep = report.New(opts.remote, res, popts, outcomes)

	switch {
	case opts.json:
		if err := out.JSON(rep); err != nil {
			return err
		}
	case opts.yaml:
		if err := out.YAML(rep); err != nil {
			return err
		}
	case proceed:
		report.Outcomes(out, rep)
		report.Summary(out, rep)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if rep.Summary.Status == prune.StatusPartial {
		return errNotAllRemoved
	}
	return nil
}

// gatherBranches reads the three branch sources one after another. The
// live query is the slow one, so a spinner runs while stderr is a terminal.
func gatherBranches(ctx context.Context, root string, opts *options) ([]stale.LocalBranch, []string, stale.LiveListing, error) {
	locals, err := git.ListLocalBranches(ctx, root)
	if err != nil {
		return nil, nil, stale.Unavailable(), err
	}
	tracking, err := git.ListRemoteTrackingBranches(ctx, root, opts.remote)
	if err != nil {
		return nil, nil, stale.Unavailable(), err
	}

	if !opts.quiet && stderrIsTerminal() {
		sp := progress.NewSpinner(fmt.Sprintf("Querying %s...", opts.remote))
		sp.Start()
		defer sp.Stop()
	}
	live := git.ListLiveRemoteBranches(ctx, root, opts.remote)
	if err := ctx.Err(); err != nil {
		return nil, nil, stale.Unavailable(), err
	}
	return locals, tracking, live, nil
}

// chooseTargets applies interactive selection and confirmation.
// proceed is false when the operator backed out; nothing is deleted then.
func chooseTargets(ctx context.Context, opts *options, cfg *config.Config, mode prune.Mode, candidates []string) (targets []string, proceed bool, err error) {
	if mode != prune.Delete || len(candidates) == 0 {
		return candidates, true, nil
	}

	out := output.FromContext(ctx)
	if opts.structured() {
		out = output.New(io.Discard)
	}
	interactive := stdinIsTerminal() && stderrIsTerminal()

	targets = candidates
	if opts.interactive {
		if !interactive {
			return nil, false, fmt.Errorf("--interactive requires a terminal")
		}
		res, err := selectBranches("Select branches to remove", candidates)
		if err != nil {
			return nil, false, err
		}
		if res.Cancelled {
			out.Println("\nCancelled, no branches removed")
			return nil, false, nil
		}
		targets = res.Selected
		if len(targets) == 0 {
			out.Println("\nNo branches selected")
			return nil, false, nil
		}
	}

	if cfg.Confirm && interactive && len(targets) > 0 {
		res, err := confirmPrune(fmt.Sprintf("Remove %d branch(es)?", len(targets)))
		if err != nil {
			return nil, false, err
		}
		if !res.Confirmed {
			out.Println("\nAborted, no branches removed")
			return nil, false, nil
		}
	}
	return targets, true, nil
}

// deleteBranches deletes targets one by one, showing a progress bar on a terminal.
func deleteBranches(ctx context.Context, root string, targets []string, popts prune.Options, opts *options) []prune.Outcome {
	deleter := prune.DeleterFunc(func(ctx context.Context, name string, force bool) error {
		return git.DeleteBranch(ctx, root, name, force)
	})

	l := log.FromContext(ctx)
	popts.OnOutcome = func(i int, o prune.Outcome) {
		l.Debug("processed branch", "branch", o.Name, "deleted", o.Deleted, "error", o.Error)
	}

	if popts.Mode == prune.Delete && len(targets) > 1 && !opts.quiet && stderrIsTerminal() {
		bar := progress.NewBar(len(targets), fmt.Sprintf("Removing %q", targets[0]))
		bar.Start()
		defer bar.Stop()
		popts.OnOutcome = func(i int, o prune.Outcome) {
			l.Debug("processed branch", "branch", o.Name, "deleted", o.Deleted, "error", o.Error)
			if i+1 < len(targets) {
				bar.Set(i+1, fmt.Sprintf("Removing %q", targets[i+1]))
			}
		}
	}

	return prune.Execute(ctx, deleter, targets, popts)
}
