// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryAdd    Op = "add track to library"
	OpLibraryDelete Op = "delete track from library"
	OpLibraryLoad   Op = "load library"
	OpLibrarySave   Op = "save library"
	OpLibrarySweep  Op = "remove track from playlists"

	// Import operations
	OpImportFile Op = "import file"
	OpImportTags Op = "read file tags"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistRename   Op = "rename playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistList     Op = "list playlists"
	OpPlaylistShow     Op = "show playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"
	OpPlaylistMove     Op = "move playlist item"
	OpPlaylistExport   Op = "export playlist"
	OpPlaylistImport   Op = "import playlist"

	// Queue operations
	OpQueueLoad Op = "load queue"
	OpQueueSave Op = "save queue"
	OpQueueAdd  Op = "add to queue"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
