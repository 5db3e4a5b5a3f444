package styles

// Outcome markers used in the prune table and the selection list.
const (
	SymbolDeleted  = "✓"
	SymbolFailed   = "✗"
	SymbolSelected = "[✓]"
	SymbolEmpty    = "[ ]"
)

// Deleted renders a success marker followed by text.
func Deleted(text string) string {
	return SuccessStyle.Render(SymbolDeleted + " " + text)
}

// Failed renders a failure marker followed by text.
func Failed(text string) string {
	return ErrorStyle.Render(SymbolFailed + " " + text)
}
