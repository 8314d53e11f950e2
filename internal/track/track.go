// Package track defines the track value shared by the library index,
// playlists and the playback queue.
package track

import (
	"cmp"
	"strings"
	"time"
)

// Track is an immutable description of a single song.
// AdditionalArtists does not take part in ordering or identity.
type Track struct {
	Title             string
	Artist            string
	Album             string
	Duration          time.Duration
	AdditionalArtists []string
}

// Key identifies a library entry. Two tracks with the same key are the same
// entry regardless of album or duration.
type Key struct {
	Title  string
	Artist string
}

// New validates the fields and builds a track. Duration must be "MM:SS".
func New(title, artist, album, duration string, additional ...string) (Track, error) {
	d, err := ParseDuration(duration)
	if err != nil {
		return Track{}, err
	}
	t := Track{
		Title:             strings.TrimSpace(title),
		Artist:            strings.TrimSpace(artist),
		Album:             strings.TrimSpace(album),
		Duration:          d,
		AdditionalArtists: cleanArtists(additional),
	}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}
	return t, nil
}

// Validate checks the required fields.
func (t Track) Validate() error {
	switch {
	case strings.TrimSpace(t.Title) == "":
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	case strings.TrimSpace(t.Artist) == "":
		return &ValidationError{Field: "artist", Reason: "must not be empty"}
	case strings.TrimSpace(t.Album) == "":
		return &ValidationError{Field: "album", Reason: "must not be empty"}
	case t.Duration < 0:
		return &ValidationError{Field: "duration", Reason: "must not be negative"}
	case t.Duration%time.Second != 0:
		return &ValidationError{Field: "duration", Reason: "must be whole seconds"}
	}
	return nil
}

// Key returns the dedup key of the track.
func (t Track) Key() Key {
	return Key{Title: t.Title, Artist: t.Artist}
}

// Seconds returns the duration in whole seconds.
func (t Track) Seconds() int {
	return int(t.Duration / time.Second)
}

// Compare orders tracks by title, artist, album, then duration.
func Compare(a, b Track) int {
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	if c := strings.Compare(a.Artist, b.Artist); c != 0 {
		return c
	}
	if c := strings.Compare(a.Album, b.Album); c != 0 {
		return c
	}
	return cmp.Compare(a.Duration, b.Duration)
}

// Equal reports whether both tracks hold the same values, additional artists included.
func Equal(a, b Track) bool {
	if Compare(a, b) != 0 || len(a.AdditionalArtists) != len(b.AdditionalArtists) {
		return false
	}
	for i := range a.AdditionalArtists {
		if a.AdditionalArtists[i] != b.AdditionalArtists[i] {
			return false
		}
	}
	return true
}

// String renders the compact one-line form: "Title - Artist (MM:SS)".
func (t Track) String() string {
	return t.Title + " - " + t.Artist + " (" + FormatDuration(t.Duration) + ")"
}

func cleanArtists(artists []string) []string {
	var out []string
	for _, a := range artists {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
