package queue

// SourceKind tells where the queue content came from.
type SourceKind int

const (
	SourceLibrary SourceKind = iota
	SourcePlaylist
)

// Source is a tagged variant: Library, or Playlist(name).
// The zero value is Library.
type Source struct {
	kind     SourceKind
	playlist string
}

// LibrarySource returns the Library variant.
func LibrarySource() Source {
	return Source{kind: SourceLibrary}
}

// PlaylistSource returns the Playlist(name) variant.
func PlaylistSource(name string) Source {
	return Source{kind: SourcePlaylist, playlist: name}
}

// Kind returns the variant tag.
func (s Source) Kind() SourceKind {
	return s.kind
}

// Playlist returns the playlist name for the Playlist variant.
func (s Source) Playlist() (string, bool) {
	if s.kind != SourcePlaylist {
		return "", false
	}
	return s.playlist, true
}

// String returns "Library" or "Playlist".
func (s Source) String() string {
	if s.kind == SourcePlaylist {
		return "Playlist"
	}
	return "Library"
}
