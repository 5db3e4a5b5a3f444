// Package report renders the result of a run for the operator.
//
// Text output follows the long-standing git removed-branches wording so
// scripts that grep for it keep working. JSON and YAML output carry the
// same data in a stable shape.
package report

import (
	"fmt"

	"github.com/raphi011/git-removed-branches/internal/output"
	"github.com/raphi011/git-removed-branches/internal/prune"
	"github.com/raphi011/git-removed-branches/internal/stale"
	"github.com/raphi011/git-removed-branches/internal/ui/static"
	"github.com/raphi011/git-removed-branches/internal/ui/styles"
)

// Report is everything a run produced.
type Report struct {
	Remote        string          `json:"remote" yaml:"remote"`
	Mode          string          `json:"mode" yaml:"mode"`
	Force         bool            `json:"force" yaml:"force"`
	LiveAvailable bool            `json:"liveAvailable" yaml:"liveAvailable"`
	Candidates    []string        `json:"candidates" yaml:"candidates"`
	Divergence    []string        `json:"divergence" yaml:"divergence"`
	Outcomes      []prune.Outcome `json:"outcomes" yaml:"outcomes"`
	Summary       prune.Summary   `json:"summary" yaml:"summary"`
}

// New builds a report from the reconciliation and execution results.
// outcomes may cover a subset of the candidates (interactive selection).
func New(remote string, res stale.Result, opts prune.Options, outcomes []prune.Outcome) Report {
	if outcomes == nil {
		outcomes = []prune.Outcome{}
	}
	return Report{
		Remote:        remote,
		Mode:          opts.Mode.String(),
		Force:         opts.Force,
		LiveAvailable: res.LiveAvailable(),
		Candidates:    orEmpty(res.Candidates),
		Divergence:    orEmpty(res.Divergence),
		Outcomes:      outcomes,
		Summary:       prune.Summarize(outcomes, opts.Mode),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Outdated reports whether the cached listing disagrees with the live one.
func (r Report) Outdated() bool {
	return r.LiveAvailable && len(r.Divergence) > 0
}

// Warnings writes the unreachable-remote and outdated-cache warnings.
// Nothing is written when the live listing was available and agreed.
func Warnings(p *output.Printer, r Report) {
	if !r.LiveAvailable {
		p.Println(styles.WarningStyle.Render("WARNING: Unable to connect to remote host"))
		p.Println()
		return
	}
	if !r.Outdated() {
		return
	}
	p.Println(styles.WarningStyle.Render(fmt.Sprintf(`WARNING: Your git repository is outdated, please run "git fetch -p %s"`, r.Remote)))
	p.Println("         Following branches are not pruned:")
	p.List(r.Divergence)
	p.Println()
}

// Candidates writes the list of stale branches.
func Candidates(p *output.Printer, r Report) {
	if len(r.Candidates) == 0 {
		p.Println("No removed branches found")
		return
	}
	p.Println("Found removed branches:")
	p.List(r.Candidates)
}

// Outcomes writes one table row per attempted deletion.
func Outcomes(p *output.Printer, r Report) {
	if r.Mode != prune.Delete.String() || len(r.Outcomes) == 0 {
		return
	}
	rows := make([][]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Deleted {
			rows = append(rows, []string{o.Name, styles.Deleted("removed"), ""})
		} else {
			rows = append(rows, []string{o.Name, styles.Failed("failed"), o.Error})
		}
	}
	p.Println()
	p.Print(static.RenderTable([]string{"BRANCH", "RESULT", "ERROR"}, rows))
}

// Summary writes the closing lines with follow-up hints.
func Summary(p *output.Printer, r Report) {
	switch r.Summary.Status {
	case prune.StatusDryRun:
		p.Println()
		p.Println(styles.MutedStyle.Render("INFO: To remove all found branches use --prune flag"))
	case prune.StatusAllRemoved:
		p.Println()
		p.Println(styles.SuccessStyle.Render("INFO: All branches are removed"))
	case prune.StatusPartial:
		p.Println()
		p.Println(styles.ErrorStyle.Render("Not all branches are removed:"))
		p.List(r.Summary.Failed)
		if !r.Force {
			p.Println()
			p.Println(styles.MutedStyle.Render("INFO: To force removal use --force flag"))
		}
	}
}
