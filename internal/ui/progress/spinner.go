package progress

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/git-removed-branches/internal/ui/styles"
)

// messageUpdate changes the spinner text
type messageUpdate string

// Spinner shows an indeterminate indicator, e.g. while ls-remote runs.
type Spinner struct {
	r       *runner[messageUpdate]
	message string
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	updates <-chan messageUpdate
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, wait(m.updates))
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messageUpdate:
		m.message = string(msg)
		return m, wait(m.updates)
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m spinnerModel) render() string {
	if m.message == "" {
		return ""
	}
	return m.spinner.View() + " " + m.message
}

// NewSpinner creates a spinner showing message.
func NewSpinner(message string) *Spinner {
	return &Spinner{r: newRunner[messageUpdate](), message: message}
}

// Start begins the animation on stderr.
func (s *Spinner) Start() {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.PrimaryStyle

	s.r.start(spinnerModel{
		spinner: sp,
		message: s.message,
		updates: s.r.updates,
	})
}

// UpdateMessage changes the spinner text.
func (s *Spinner) UpdateMessage(message string) {
	if !s.r.send(messageUpdate(message)) {
		s.message = message
	}
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.r.stop()
}
