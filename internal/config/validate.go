package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"default", "dracula", "nord", "none"}
	ValidThemeModes = []string{"auto", "light", "dark"}
)

// Validate checks field values.
func (c Config) Validate() error {
	if err := ValidateRemote(c.Remote); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

// ValidateRemote checks a remote name before it is passed to git as a
// positional argument. A leading "-" would be parsed as an option.
func ValidateRemote(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("remote must not be empty")
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("invalid remote %q: must not contain whitespace", name)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid remote %q: must not start with \"-\"", name)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
