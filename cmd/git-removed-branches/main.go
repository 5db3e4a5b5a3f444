// Command git-removed-branches lists and prunes local branches whose
// upstream branch no longer exists on the remote.
//
// Installed on PATH it is also available as "git removed-branches".
package main

import (
	"fmt"
	"runtime"
)

// Version information - set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}

// versionString returns the version string.
func versionString() string {
	return fmt.Sprintf("git-removed-branches %s (%s, %s, %s)", version, commit[:min(7, len(commit))], date, runtime.Version())
}
