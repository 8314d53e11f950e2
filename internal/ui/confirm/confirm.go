// Package confirm provides a yes/no confirmation prompt.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/trackshelf/internal/ui/styles"
)

// Result is the message sent once the prompt is answered.
type Result struct {
	Confirmed bool
	Context   any // passed through from Show
}

// Model is a yes/no prompt. The zero value is hidden.
type Model struct {
	title   string
	message string
	context any
	active  bool
}

// New creates a hidden prompt.
func New() Model {
	return Model{}
}

// Show displays the prompt. context comes back in the Result.
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
}

// Reset hides the prompt and forgets its context.
func (m *Model) Reset() {
	*m = Model{}
}

// Active returns whether the prompt is shown.
func (m Model) Active() bool {
	return m.active
}

// Update answers the prompt on enter/y (confirm) or esc/n (cancel). Other
// keys are swallowed while the prompt is shown.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "enter", "y", "Y":
		return m.answer(true)
	case "esc", "n", "N":
		return m.answer(false)
	}
	return nil
}

func (m *Model) answer(confirmed bool) tea.Cmd {
	ctx := m.context
	m.Reset()
	return func() tea.Msg {
		return Result{Confirmed: confirmed, Context: ctx}
	}
}

// View renders the prompt, or nothing when hidden.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	s := styles.T().S()
	return s.Title.Render(m.title) + "\n" +
		s.Base.Render(m.message) + "\n" +
		s.Subtle.Render("Enter/Y: confirm, Esc/N: cancel")
}
