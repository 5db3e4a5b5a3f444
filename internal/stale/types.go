package stale

import "slices"

// HeadRef is the symbolic pseudo-branch a remote advertises as its default.
// It is never a deletion candidate and never counts as divergence.
const HeadRef = "HEAD"

// LocalBranch is a branch in the local repository.
type LocalBranch struct {
	Name string

	// UpstreamRemote is the value of branch.<name>.remote, empty when the
	// branch has no tracking configuration.
	UpstreamRemote string

	// UpstreamBranch is the branch name on the remote, taken from
	// branch.<name>.merge without the refs/heads/ prefix. Empty when unset.
	UpstreamBranch string
}

// RemoteName returns the name the branch is expected to have on its remote.
func (b LocalBranch) RemoteName() string {
	if b.UpstreamBranch != "" {
		return b.UpstreamBranch
	}
	return b.Name
}

// Tracks reports whether the branch is configured to track remote.
func (b LocalBranch) Tracks(remote string) bool {
	return b.UpstreamRemote != "" && b.UpstreamRemote == remote
}

// LiveListing is the result of querying the remote directly.
// The zero value is unavailable: it must never be mistaken for a remote
// that has no branches.
type LiveListing struct {
	names     []string
	available bool
}

// Live wraps a successful live query. A nil or empty names slice means the
// remote answered with zero branches.
func Live(names []string) LiveListing {
	return LiveListing{names: slices.Clone(names), available: true}
}

// Unavailable marks a live query that could not complete.
func Unavailable() LiveListing {
	return LiveListing{}
}

// Available reports whether the live query succeeded.
func (l LiveListing) Available() bool {
	return l.available
}

// Names returns the live branch names and whether the query succeeded.
func (l LiveListing) Names() ([]string, bool) {
	return slices.Clone(l.names), l.available
}

// NameSet is a set of branch names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names, skipping HeadRef.
func NewNameSet(names []string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		if n == HeadRef || n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the set's names in lexical order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
