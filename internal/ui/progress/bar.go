package progress

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/git-removed-branches/internal/ui/styles"
)

// barUpdate moves the bar to current and sets the message
type barUpdate struct {
	current int
	message string
}

// Bar shows determinate progress, e.g. branches deleted out of the total.
type Bar struct {
	r       *runner[barUpdate]
	total   int
	current int
	message string
}

type barModel struct {
	progress progress.Model
	total    int
	current  int
	message  string
	updates  <-chan barUpdate
}

func (m barModel) Init() tea.Cmd {
	return wait(m.updates)
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case barUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, wait(m.updates)
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m barModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.current)/float64(m.total), 1)
}

func (m barModel) View() tea.View {
	return tea.NewView(m.render())
}

// [████████░░░░░░░░] 3/8 Removing "feature/x"
func (m barModel) render() string {
	if m.message == "" {
		return ""
	}
	return fmt.Sprintf("%s %d/%d %s", m.progress.ViewAs(m.percent()), m.current, m.total, m.message)
}

// NewBar creates a progress bar for total steps.
func NewBar(total int, message string) *Bar {
	return &Bar{r: newRunner[barUpdate](), total: total, message: message}
}

// Start begins rendering on stderr.
func (b *Bar) Start() {
	prog := progress.New(
		progress.WithWidth(30),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)
	b.r.start(barModel{
		progress: prog,
		total:    b.total,
		current:  b.current,
		message:  b.message,
		updates:  b.r.updates,
	})
}

// Set updates the current step and message.
func (b *Bar) Set(current int, message string) {
	if !b.r.send(barUpdate{current: current, message: message}) {
		b.current = current
		b.message = message
	}
}

// Stop ends rendering and clears the line.
func (b *Bar) Stop() {
	b.r.stop()
}

// Total returns the number of steps.
func (b *Bar) Total() int {
	return b.total
}
