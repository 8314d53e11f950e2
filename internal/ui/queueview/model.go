// Package queueview is the interactive queue screen: the current track, one
// page of upcoming tracks, and single-key playback controls.
package queueview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/trackshelf/internal/app"
	"github.com/llehouerou/trackshelf/internal/errmsg"
	"github.com/llehouerou/trackshelf/internal/keymap"
	"github.com/llehouerou/trackshelf/internal/ui"
	"github.com/llehouerou/trackshelf/internal/ui/confirm"
	"github.com/llehouerou/trackshelf/internal/ui/keyhandler"
)

// clearRequest is the confirm context of the clear action.
type clearRequest struct{}

// logLineMsg carries a line written to stderr while the screen is up.
type logLineMsg struct {
	line string
}

// Model is the bubbletea model of the queue screen.
type Model struct {
	ui.Base
	session *app.Session
	keys    *keymap.KeyMap
	help    help.Model
	confirm confirm.Model
	logs    <-chan string

	page   int
	status string
	failed bool
}

// New creates a queue view over the session queue.
func New(s *app.Session) Model {
	return Model{
		session: s,
		keys:    keymap.Default(),
		help:    help.New(),
		confirm: confirm.New(),
		page:    1,
	}
}

// WithLogLines shows lines received from ch as errors in the status line.
func (m Model) WithLogLines(ch <-chan string) Model {
	m.logs = ch
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.watchLogs()
}

func (m Model) watchLogs() tea.Cmd {
	if m.logs == nil {
		return nil
	}
	ch := m.logs
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return logLineMsg{line: line}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = m.InnerWidth()
		return m, nil
	case logLineMsg:
		m.status, m.failed = msg.line, true
		return m, m.watchLogs()
	case confirm.Result:
		if _, ok := msg.Context.(clearRequest); ok && msg.Confirmed {
			m.report(m.session.ClearQueue(), "Queue cleared")
			m.page = 1
		}
		return m, nil
	case tea.KeyMsg:
		if m.confirm.Active() {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, m.confirm.Update(msg)
		}
		m.status, m.failed = "", false
		_, cmd := keyhandler.Chain(m.keys.Resolve(msg),
			m.handleGlobal,
			m.handlePlayback,
			m.handleQueue,
		)
		m.clampPage()
		return m, cmd
	}
	return m, nil
}

// Page returns the upcoming page shown (1-based).
func (m Model) Page() int {
	return m.page
}

// Confirming reports whether a confirmation prompt is waiting for an answer.
func (m Model) Confirming() bool {
	return m.confirm.Active()
}

// Status returns the message shown under the panel.
func (m Model) Status() string {
	return m.status
}

func (m *Model) handleGlobal(a keymap.Action) keyhandler.Result {
	switch a { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionQuit:
		return keyhandler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return keyhandler.HandledNoCmd
	}
	return keyhandler.NotHandled
}

func (m *Model) handlePlayback(a keymap.Action) keyhandler.Result {
	q := m.session.Queue()
	switch a { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionPlayPause:
		if q.Playing() {
			_, err := m.session.Pause()
			m.report(err, "Paused")
			return keyhandler.HandledNoCmd
		}
		ok, err := m.session.Play()
		m.report(err, pick(ok, "Playing", "Queue is empty"))
	case keymap.ActionNextTrack:
		ok, err := m.session.Next()
		m.report(err, pick(ok, "", "End of queue"))
		m.page = 1
	case keymap.ActionPrevTrack:
		ok, err := m.session.Previous()
		m.report(err, pick(ok, "", "No previous track"))
		m.page = 1
	case keymap.ActionToggleShuffle:
		on := !q.Shuffle()
		m.report(m.session.SetShuffle(on), "Shuffle "+onOff(on))
		m.page = 1
	case keymap.ActionToggleRepeat:
		on := !q.Repeat()
		m.report(m.session.SetRepeat(on), "Repeat "+onOff(on))
	default:
		return keyhandler.NotHandled
	}
	return keyhandler.HandledNoCmd
}

func (m *Model) handleQueue(a keymap.Action) keyhandler.Result {
	switch a { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionPageDown:
		m.page++
	case keymap.ActionPageUp:
		m.page--
	case keymap.ActionClear:
		q := m.session.Queue()
		if q.IsEmpty() && q.History().Len() == 0 {
			m.status = "Queue is empty"
			break
		}
		m.confirm.Show("Clear queue",
			fmt.Sprintf("Remove %d queued and %d played tracks?", q.Len(), q.History().Len()),
			clearRequest{})
	case keymap.ActionQueueLibrary:
		if err := m.session.QueueFromLibrary(); err != nil {
			m.fail(errmsg.OpQueueLoad, err)
		} else {
			m.status = fmt.Sprintf("Queued library (%d tracks)", m.session.Queue().Len())
		}
		m.page = 1
	default:
		return keyhandler.NotHandled
	}
	return keyhandler.HandledNoCmd
}

// report shows msg, or the save error when the change could not be persisted.
func (m *Model) report(err error, msg string) {
	if err != nil {
		m.fail(errmsg.OpQueueSave, err)
		return
	}
	m.status = msg
}

func (m *Model) fail(op errmsg.Op, err error) {
	m.status = errmsg.Format(op, err)
	m.failed = true
}

func (m *Model) clampPage() {
	_, pages := m.session.Upcoming(1)
	m.page = min(max(m.page, 1), pages)
}

func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
