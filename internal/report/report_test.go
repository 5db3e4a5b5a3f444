package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/git-removed-branches/internal/output"
	"github.com/raphi011/git-removed-branches/internal/prune"
	"github.com/raphi011/git-removed-branches/internal/stale"
)

func render(fn func(*output.Printer, Report), r Report) string {
	var buf bytes.Buffer
	fn(output.New(&buf), r)
	return ansi.Strip(buf.String())
}

func liveResult(candidates, divergence []string) stale.Result {
	locals := make([]stale.LocalBranch, 0, len(candidates)+1)
	locals = append(locals, stale.LocalBranch{Name: "main", UpstreamRemote: "origin"})
	for _, c := range candidates {
		locals = append(locals, stale.LocalBranch{Name: c, UpstreamRemote: "origin"})
	}
	tracking := append([]string{"main"}, divergence...)
	return stale.Reconcile(locals, tracking, stale.Live([]string{"main"}), "origin")
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"none", nil, "No removed branches found\n"},
		{"some", []string{"feature/a", "#333-work"}, "Found removed branches:\n  - feature/a\n  - #333-work\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New("origin", liveResult(tt.candidates, nil), prune.Options{}, nil)
			if got := render(Candidates, r); got != tt.want {
				t.Errorf("Candidates() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	t.Run("in sync", func(t *testing.T) {
		t.Parallel()
		r := New("origin", liveResult([]string{"a"}, nil), prune.Options{}, nil)
		if got := render(Warnings, r); got != "" {
			t.Errorf("Warnings() = %q, want empty", got)
		}
	})

	t.Run("outdated", func(t *testing.T) {
		t.Parallel()
		r := New("upstream", liveResult(nil, []string{"gone"}), prune.Options{}, nil)
		got := render(Warnings, r)
		for _, want := range []string{
			`WARNING: Your git repository is outdated, please run "git fetch -p upstream"`,
			"Following branches are not pruned:",
			"  - gone\n",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("Warnings() = %q, want to contain %q", got, want)
			}
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		res := stale.Reconcile(nil, []string{"gone"}, stale.Unavailable(), "origin")
		r := New("origin", res, prune.Options{}, nil)
		got := render(Warnings, r)
		if !strings.Contains(got, "WARNING: Unable to connect to remote host") {
			t.Errorf("Warnings() = %q, want unreachable notice", got)
		}
		if strings.Contains(got, "outdated") {
			t.Errorf("Warnings() = %q, outdated warning must not be shown without live listing", got)
		}
	})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	failed := prune.Outcome{Name: "no-ff", Error: "error: the branch 'no-ff' is not fully merged"}
	removed := prune.Outcome{Name: "feature/a", Deleted: true}

	tests := []struct {
		name     string
		opts     prune.Options
		outcomes []prune.Outcome
		want     []string
		wantNot  []string
	}{
		{
			name:     "dry run",
			opts:     prune.Options{Mode: prune.DryRun},
			outcomes: []prune.Outcome{{Name: "feature/a"}},
			want:     []string{"INFO: To remove all found branches use --prune flag"},
		},
		{
			name:     "all removed",
			opts:     prune.Options{Mode: prune.Delete},
			outcomes: []prune.Outcome{removed},
			want:     []string{"INFO: All branches are removed"},
		},
		{
			name:     "partial",
			opts:     prune.Options{Mode: prune.Delete},
			outcomes: []prune.Outcome{removed, failed},
			want:     []string{"Not all branches are removed:", "  - no-ff", "INFO: To force removal use --force flag"},
			wantNot:  []string{"  - feature/a"},
		},
		{
			name:     "partial with force",
			opts:     prune.Options{Mode: prune.Delete, Force: true},
			outcomes: []prune.Outcome{failed},
			want:     []string{"Not all branches are removed:"},
			wantNot:  []string{"--force"},
		},
		{
			name:    "nothing found",
			opts:    prune.Options{Mode: prune.Delete},
			wantNot: []string{"INFO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New("origin", stale.Result{}, tt.opts, tt.outcomes)
			got := render(Summary, r)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Summary() = %q, want to contain %q", got, want)
				}
			}
			for _, unwanted := range tt.wantNot {
				if strings.Contains(got, unwanted) {
					t.Errorf("Summary() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestOutcomes(t *testing.T) {
	t.Parallel()

	outcomes := []prune.Outcome{
		{Name: "feature/a", Deleted: true},
		{Name: "no-ff", Error: "not fully merged"},
	}

	got := render(Outcomes, New("origin", stale.Result{}, prune.Options{Mode: prune.Delete}, outcomes))
	for _, want := range []string{"BRANCH", "feature/a", "✓ removed", "no-ff", "✗ failed", "not fully merged"} {
		if !strings.Contains(got, want) {
			t.Errorf("Outcomes() = %q, want to contain %q", got, want)
		}
	}

	dry := render(Outcomes, New("origin", stale.Result{}, prune.Options{Mode: prune.DryRun}, []prune.Outcome{{Name: "feature/a"}}))
	if dry != "" {
		t.Errorf("Outcomes() in dry run = %q, want empty", dry)
	}
}

func TestJSONShape(t *testing.T) {
	t.Parallel()

	r := New("origin", stale.Result{}, prune.Options{Mode: prune.DryRun}, nil)
	var buf bytes.Buffer
	if err := output.New(&buf).JSON(r); err != nil {
		t.Fatalf("JSON() = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"remote", "liveAvailable", "candidates", "divergence", "outcomes", "summary"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing key %q: %s", key, buf.String())
		}
	}
	// empty collections are arrays, not null
	if _, ok := decoded["candidates"].([]any); !ok {
		t.Errorf("candidates = %v, want []", decoded["candidates"])
	}
}
