// Package stale decides which local branches have become stale.
//
// A branch is stale when it tracks the configured remote but its upstream
// branch is gone. Three inventories feed the decision:
//
//   - local branches with their upstream configuration
//   - remote-tracking branches, the cache written by the last fetch
//   - live remote branches, queried from the remote during this run
//
// [Reconcile] prefers the live listing. When the remote cannot be reached it
// falls back to the cache, and no divergence is reported. When both are
// known, cached names missing from the live listing are reported as
// divergence so the operator can run "git fetch -p".
//
// A live query that failed is represented by [Unavailable], never by an
// empty listing: an empty listing would turn every tracked branch into a
// candidate.
package stale
