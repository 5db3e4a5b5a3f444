// Package prompt provides the interactive prompts used before pruning.
//
// Prompts render on stderr and should only be shown when stdin and
// stderr are terminals.
//
// Available prompts:
//   - [Confirm]: yes/no confirmation, default no
//   - [MultiSelect]: fuzzy-filtered checklist, all items preselected
package prompt
