// Package icons maps queue states and sources to glyphs in the configured style.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for one style.
type Icons struct {
	Playing  string
	Paused   string
	Shuffle  string
	Repeat   string
	Library  string
	Playlist string
	Track    string
}

var (
	nerdIcons = Icons{
		Playing:  "", // nf-fa-play
		Paused:   "", // nf-fa-pause
		Shuffle:  "󰒟",      // nf-md-shuffle
		Repeat:   "󰑖",      // nf-md-repeat
		Library:  "󰌱 ",     // nf-md-library
		Playlist: "󰲸 ",     // nf-md-playlist_music
		Track:    " ", // nf-fa-music
	}

	unicodeIcons = Icons{
		Playing:  "▶",
		Paused:   "⏸",
		Shuffle:  "🔀",
		Repeat:   "🔁",
		Library:  "📚 ",
		Playlist: "📋 ",
		Track:    "🎵 ",
	}

	noneIcons = Icons{
		Playing:  ">",
		Paused:   "=",
		Shuffle:  "[S]",
		Repeat:   "[R]",
		Library:  "",
		Playlist: "",
		Track:    "",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init selects the icon set. Unknown styles fall back to none.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Playing returns the playback indicator.
func Playing() string {
	return current.Playing
}

// Paused returns the paused indicator.
func Paused() string {
	return current.Paused
}

// PlayState returns Playing or Paused.
func PlayState(playing bool) string {
	if playing {
		return current.Playing
	}
	return current.Paused
}

// Shuffle returns the shuffle icon.
func Shuffle() string {
	return current.Shuffle
}

// Repeat returns the repeat icon.
func Repeat() string {
	return current.Repeat
}

// Modes renders the enabled mode icons separated by two spaces.
func Modes(shuffle, repeat bool) string {
	switch {
	case shuffle && repeat:
		return current.Shuffle + "  " + current.Repeat
	case shuffle:
		return current.Shuffle
	case repeat:
		return current.Repeat
	default:
		return ""
	}
}

// FormatLibrary prefixes the library label.
func FormatLibrary(label string) string {
	return current.Library + label
}

// FormatPlaylist formats a playlist name with the appropriate icon.
func FormatPlaylist(name string) string {
	return current.Playlist + name
}

// FormatTrack formats a track line with the appropriate icon.
func FormatTrack(line string) string {
	return current.Track + line
}
