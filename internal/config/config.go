package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultRemote is the remote compared against when none is configured.
const DefaultRemote = "origin"

// Environment variables that override the config file.
const (
	EnvRemote = "GIT_REMOVED_BRANCHES_REMOTE"
	EnvTheme  = "GIT_REMOVED_BRANCHES_THEME"
)

// ThemeConfig holds output color settings
type ThemeConfig struct {
	Name string `toml:"name" json:"name"` // preset name, see ValidThemeNames
	Mode string `toml:"mode" json:"mode"` // "auto", "light" or "dark"
}

// Config holds the git-removed-branches configuration
type Config struct {
	Remote  string      `toml:"remote" json:"remote"`
	Force   bool        `toml:"force" json:"force"`     // default for --force
	Confirm bool        `toml:"confirm" json:"confirm"` // ask before pruning on a terminal
	Theme   ThemeConfig `toml:"theme" json:"theme"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Remote: DefaultRemote,
		Theme: ThemeConfig{
			Name: "default",
			Mode: "auto",
		},
	}
}

// Path returns the path to the config file.
// $XDG_CONFIG_HOME is honoured, otherwise ~/.config is used.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-removed-branches", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-removed-branches", "config.toml"), nil
}

// Load reads the config file at Path and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid; the returned
// config is then Default() with environment overrides applied.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default()), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from path and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return applyEnv(Default()), err
	}
	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return applyEnv(Default()), err
	}
	return cfg, nil
}

func readFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("unknown key %q in config file %s", undecoded[0].String(), path)
	}

	// Use defaults for empty values
	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "default"
	}
	if cfg.Theme.Mode == "" {
		cfg.Theme.Mode = "auto"
	}
	return cfg, nil
}

// applyEnv overrides config values from the environment.
func applyEnv(cfg Config) Config {
	if v := os.Getenv(EnvRemote); v != "" {
		cfg.Remote = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme.Name = v
	}
	return cfg
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const defaultConfig = `# git-removed-branches configuration

# Remote whose branches are authoritative. Overridden by --remote and
# the GIT_REMOVED_BRANCHES_REMOTE environment variable.
remote = "origin"

# Always delete with "git branch -D", even if a branch has unmerged commits.
# Same as passing --force on every run.
force = false

# Ask for confirmation before deleting branches when running in a terminal.
confirm = false

[theme]
# Color preset: "default", "dracula", "nord" or "none".
# Overridden by GIT_REMOVED_BRANCHES_THEME.
name = "default"
# "auto" detects the terminal background; "light" or "dark" force a variant.
mode = "auto"
`

// DefaultContent returns the commented default config file.
func DefaultContent() string {
	return defaultConfig
}

// Init creates a default config file at Path.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitAt(path, force)
}

// InitAt writes the default config file to path.
func InitAt(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
