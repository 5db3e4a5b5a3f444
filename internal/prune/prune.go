// Package prune deletes stale branches one at a time and reports what
// happened to each of them.
package prune

import (
	"context"
	"fmt"
)

// Mode selects whether candidates are deleted or only reported.
type Mode int

const (
	// DryRun reports candidates without touching the repository.
	DryRun Mode = iota
	// Delete removes every candidate.
	Delete
)

func (m Mode) String() string {
	switch m {
	case DryRun:
		return "dry-run"
	case Delete:
		return "prune"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Options configures a batch.
type Options struct {
	Mode Mode

	// Force deletes branches even if they hold unmerged commits.
	Force bool

	// OnOutcome, if set, is called after each candidate is processed.
	OnOutcome func(i int, o Outcome)
}

// Outcome records what happened to one candidate.
type Outcome struct {
	Name    string `json:"name" yaml:"name"`
	Deleted bool   `json:"deleted" yaml:"deleted"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether a delete was attempted and rejected.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Deleter removes a local branch.
type Deleter interface {
	DeleteBranch(ctx context.Context, name string, force bool) error
}

// DeleterFunc adapts a function to the Deleter interface.
type DeleterFunc func(ctx context.Context, name string, force bool) error

// DeleteBranch calls f(ctx, name, force).
func (f DeleterFunc) DeleteBranch(ctx context.Context, name string, force bool) error {
	return f(ctx, name, force)
}

// Execute processes candidates sequentially in the given order and returns
// exactly one Outcome per candidate. A failed delete never stops the batch.
// In DryRun mode the deleter is not called.
func Execute(ctx context.Context, d Deleter, candidates []string, opts Options) []Outcome {
	outcomes := make([]Outcome, 0, len(candidates))
	for i, name := range candidates {
		o := Outcome{Name: name}
		if opts.Mode == Delete {
			if err := d.DeleteBranch(ctx, name, opts.Force); err != nil {
				o.Error = err.Error()
			} else {
				o.Deleted = true
			}
		}
		outcomes = append(outcomes, o)
		if opts.OnOutcome != nil {
			opts.OnOutcome(i, o)
		}
	}
	return outcomes
}
