// Package keymap defines the key bindings of the interactive queue view.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionToggleRepeat  Action = "toggle_repeat"

	// Queue actions
	ActionPageDown     Action = "page_down"
	ActionPageUp       Action = "page_up"
	ActionClear        Action = "clear"
	ActionQueueLibrary Action = "queue_library"
)
