package stale

// Source identifies which listing was taken as the authoritative upstream set.
type Source string

const (
	SourceLive  Source = "live"
	SourceCache Source = "cache"
)

// Result is the outcome of a reconciliation.
type Result struct {
	// Authoritative holds the branches considered to exist upstream.
	Authoritative NameSet
	Source        Source

	// Candidates are the local branch names safe to delete, in the order
	// the local branches were supplied.
	Candidates []string

	// Divergence lists cached remote-tracking branches missing from the
	// live listing, in cache order. Always empty when Source is SourceCache.
	Divergence []string
}

// LiveAvailable reports whether the live listing was used.
func (r Result) LiveAvailable() bool {
	return r.Source == SourceLive
}

// Outdated reports whether the local remote-tracking cache disagrees with
// the live remote and should be refreshed.
func (r Result) Outdated() bool {
	return r.Source == SourceLive && len(r.Divergence) > 0
}

// Reconcile merges the three branch inventories and computes which local
// branches tracking remote no longer exist upstream.
//
// The live listing, when available, is authoritative; otherwise the cached
// remote-tracking names are. The two are never combined.
//
// A branch is looked up by its upstream name (branch.<name>.merge) when one
// is configured, so local "foo" tracking "origin/bar" is stale once "bar"
// is gone, whether or not a remote "foo" exists.
func Reconcile(locals []LocalBranch, tracking []string, live LiveListing, remote string) Result {
	res := Result{
		Source:     SourceCache,
		Candidates: []string{},
		Divergence: []string{},
	}

	if names, ok := live.Names(); ok {
		res.Source = SourceLive
		res.Authoritative = NewNameSet(names)
		res.Divergence = divergence(tracking, res.Authoritative)
	} else {
		res.Authoritative = NewNameSet(tracking)
	}

	for _, b := range locals {
		if b.Name == HeadRef || !b.Tracks(remote) {
			continue
		}
		if !res.Authoritative.Has(b.RemoteName()) {
			res.Candidates = append(res.Candidates, b.Name)
		}
	}

	return res
}

// divergence returns tracking names absent from upstream, without HeadRef
// and without duplicates.
func divergence(tracking []string, upstream NameSet) []string {
	seen := make(NameSet, len(tracking))
	out := []string{}
	for _, n := range tracking {
		if n == HeadRef || n == "" || seen.Has(n) {
			continue
		}
		seen[n] = struct{}{}
		if !upstream.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
