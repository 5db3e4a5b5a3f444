package prompt

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/git-removed-branches/internal/ui/styles"
)

// maxVisible is the number of list rows shown at once.
const maxVisible = 10

// MultiSelectResult holds the chosen items in their original order.
type MultiSelectResult struct {
	Selected  []string
	Cancelled bool
}

// itemSource implements fuzzy.Source over the item labels.
type itemSource []string

func (s itemSource) String(i int) string { return s[i] }
func (s itemSource) Len() int            { return len(s) }

type multiSelectModel struct {
	title     string
	items     []string
	selected  []bool
	filter    string
	matches   []fuzzy.Match // visible rows, Index points into items
	cursor    int           // position in matches
	done      bool
	cancelled bool
}

func newMultiSelectModel(title string, items []string) multiSelectModel {
	m := multiSelectModel{
		title:    title,
		items:    items,
		selected: make([]bool, len(items)),
	}
	for i := range m.selected {
		m.selected[i] = true
	}
	m.applyFilter()
	return m
}

func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "ctrl+n":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
	case "space", "tab":
		if len(m.matches) > 0 {
			idx := m.matches[m.cursor].Index
			m.selected[idx] = !m.selected[idx]
		}
	case "ctrl+a":
		// Toggle every visible row: select all unless all are selected
		all := true
		for _, match := range m.matches {
			all = all && m.selected[match.Index]
		}
		for _, match := range m.matches {
			m.selected[match.Index] = !all
		}
	case "backspace":
		if m.filter != "" {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
		}
	default:
		if key.Text != "" && key.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
			m.filter += key.Text
			m.applyFilter()
		}
	}
	return m, nil
}

// applyFilter recomputes visible rows. Without a filter every item is shown
// in its original order; otherwise fuzzy matches are ranked by score.
func (m *multiSelectModel) applyFilter() {
	if m.filter == "" {
		m.matches = make([]fuzzy.Match, len(m.items))
		for i, item := range m.items {
			m.matches[i] = fuzzy.Match{Str: item, Index: i}
		}
	} else {
		m.matches = fuzzy.FindFrom(m.filter, itemSource(m.items))
	}
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
}

// Selected returns the chosen items in original order.
func (m multiSelectModel) Selected() []string {
	out := []string{}
	for i, item := range m.items {
		if m.selected[i] {
			out = append(out, item)
		}
	}
	return out
}

func (m multiSelectModel) View() tea.View {
	return tea.NewView(m.render())
}

// render draws the header, filter line, visible rows and key help.
func (m multiSelectModel) render() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d/%d selected)\n", styles.Bold.Render(m.title), len(m.Selected()), len(m.items))
	b.WriteString(styles.MutedStyle.Render("Filter: ") + m.filter + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.matches))

	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}
	for i := start; i < end; i++ {
		match := m.matches[i]
		cursor := "  "
		if i == m.cursor {
			cursor = styles.AccentStyle.Render(">") + " "
		}
		box := styles.SymbolEmpty
		if m.selected[match.Index] {
			box = styles.SuccessStyle.Render(styles.SymbolSelected)
		}
		b.WriteString(cursor + box + " " + highlight(match) + "\n")
	}
	if end < len(m.matches) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.matches) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching branches") + "\n")
	}

	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ move • space toggle • ctrl+a toggle all • type to filter • enter confirm • esc cancel"))
	return b.String()
}

// highlight renders matched characters of a fuzzy match.
func highlight(match fuzzy.Match) string {
	if len(match.MatchedIndexes) == 0 {
		return match.Str
	}
	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder
	// MatchedIndexes are byte offsets
	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MultiSelect lets the user pick a subset of items. All items start
// selected. The result keeps the input order regardless of filtering.
func MultiSelect(title string, items []string) (MultiSelectResult, error) {
	final, err := run(newMultiSelectModel(title, items))
	if err != nil {
		return MultiSelectResult{}, err
	}
	m := final.(multiSelectModel)
	if m.cancelled {
		return MultiSelectResult{Selected: []string{}, Cancelled: true}, nil
	}
	return MultiSelectResult{Selected: m.Selected()}, nil
}

// run renders model on stderr so stdout stays clean.
func run(model tea.Model) (tea.Model, error) {
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	return p.Run()
}
