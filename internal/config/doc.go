// Package config handles loading and validation of git-removed-branches
// configuration.
//
// Configuration is read from $XDG_CONFIG_HOME/git-removed-branches/config.toml
// (default ~/.config/git-removed-branches/config.toml).
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (applied by the CLI)
//   - GIT_REMOVED_BRANCHES_REMOTE / GIT_REMOVED_BRANCHES_THEME env vars
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - remote: remote whose branches are authoritative (default: "origin")
//   - force: delete with "git branch -D" (default: false)
//   - confirm: prompt before deleting on a terminal (default: false)
//   - [theme] name/mode: output colors
//
// A missing file is not an error. A file with unknown keys or invalid values
// is rejected and defaults are used.
package config
