// Package keyhandler dispatches a resolved key action through a chain of
// handlers until one of them consumes it.
package keyhandler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/trackshelf/internal/keymap"
)

// Result represents the outcome of a handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a handler ignores the action.
var NotHandled = Result{}

// HandledNoCmd is returned by handlers that consume the action without a command.
var HandledNoCmd = Result{Handled: true}

// Handled creates a Result consuming the action with cmd.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Handler attempts to handle an action.
type Handler func(a keymap.Action) Result

// Chain runs handlers in order until one handles a. The empty action is
// never handled.
func Chain(a keymap.Action, handlers ...Handler) (bool, tea.Cmd) {
	if a == "" {
		return false, nil
	}
	for _, h := range handlers {
		if r := h(a); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
