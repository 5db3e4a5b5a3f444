package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/git-removed-branches/internal/config"
	"github.com/raphi011/git-removed-branches/internal/git"
	"github.com/raphi011/git-removed-branches/internal/log"
	"github.com/raphi011/git-removed-branches/internal/output"
	"github.com/raphi011/git-removed-branches/internal/ui/styles"
)

// Exit codes
const (
	exitOK      = 0
	exitError   = 1
	exitPartial = 2 // a prune left at least one branch in place
)

// errNotAllRemoved is returned when some deletions failed. The report
// already lists them, so Execute exits without printing it.
var errNotAllRemoved = errors.New("not all branches are removed")

// options holds the flags of the root command.
type options struct {
	prune       bool
	force       bool
	remote      string
	interactive bool
	json        bool
	yaml        bool
	copy        bool
	verbose     bool
	quiet       bool
}

// structured reports whether the report is emitted as JSON or YAML, in
// which case stdout carries nothing else.
func (o *options) structured() bool {
	return o.json || o.yaml
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "git-removed-branches",
		Short: "Remove local branches whose remote branch is gone",
		Long: `Find local branches that track a branch which no longer exists on the
remote, and optionally delete them.

The remote is queried live (git ls-remote). When it cannot be reached the
locally cached remote-tracking branches are used instead. Without --prune
nothing is deleted.`,
		Example: `  git removed-branches                 # List branches that would be removed
  git removed-branches --prune         # Remove them
  git removed-branches -p --force      # Remove even if not fully merged
  git removed-branches -r upstream     # Compare against another remote
  git removed-branches -p -i           # Pick branches to remove
  git removed-branches --json          # Machine-readable report
  git removed-branches --yaml          # Same report as YAML`,
		Args:                       cobra.NoArgs,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// config subcommands work outside a repository and without git
			if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "config") || cmd.Name() == "config" {
				return nil
			}
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			if opts.interactive && !opts.prune {
				return fmt.Errorf("--interactive requires --prune")
			}
			if !cmd.Flags().Changed("remote") {
				opts.remote = cfg.Remote
			}
			// The remote ends up as a positional git argument
			if err := config.ValidateRemote(opts.remote); err != nil {
				return err
			}
			opts.force = opts.force || cfg.Force

			// Re-create the logger now that -v/-q are parsed
			ctx = log.WithLogger(ctx, log.New(log.FromContext(ctx).Writer(), opts.verbose, opts.quiet))
			return runRemovedBranches(ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.prune, "prune", "p", false, "Delete the removed branches")
	flags.BoolVar(&opts.prune, "do-it", false, "Alias for --prune")
	_ = flags.MarkHidden("do-it")
	flags.BoolVarP(&opts.force, "force", "f", false, `Delete with "git branch -D" even if not fully merged`)
	flags.StringVarP(&opts.remote, "remote", "r", config.DefaultRemote, "Remote to compare against")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Select which branches to delete (with --prune)")
	flags.BoolVar(&opts.json, "json", false, "Output the report as JSON")
	flags.BoolVar(&opts.yaml, "yaml", false, "Output the report as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	flags.BoolVar(&opts.copy, "copy", false, "Copy the removed branch names to the clipboard")

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show git commands being executed")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress warnings and diagnostics")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute runs the root command and exits with the resulting code.
func Execute() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "WARNING: %v\n", err)
	}
	styles.Init(cfg.Theme)

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: failed to get working directory: %v\n", err)
		return exitError
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Downsample colors to what the terminal supports; strips them for pipes
	stdout = colorprofile.NewWriter(stdout, os.Environ())

	ctx = config.WithConfig(ctx, &cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = log.WithLogger(ctx, log.New(stderr, false, false))
	ctx = output.WithPrinter(ctx, stdout)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err = cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotAllRemoved):
		return exitPartial
	default:
		fmt.Fprintln(stderr, styles.ErrorStyle.Render("ERROR: "+errorMessage(err)))
		return exitError
	}
}

// errorMessage returns the operator-facing text for a fatal error.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, git.ErrNotRepository):
		return "Not a git repository"
	case errors.Is(err, context.Canceled):
		return "Interrupted"
	default:
		return err.Error()
	}
}
