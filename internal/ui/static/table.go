// Package static provides non-interactive terminal output components.
//
// Components here render formatted output that needs no user
// interaction, such as the prune outcome table.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/git-removed-branches/internal/ui/styles"
)

// RenderTable creates a formatted table with aligned columns.
// Column widths are computed by lipgloss/table from the content; no borders
// are drawn. Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).PaddingRight(2)
	cell := lipgloss.NewStyle().PaddingRight(2)

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}
