// Package tags reads track metadata and stream durations from music files
// so they can be imported into the library.
package tags

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/trackshelf/internal/track"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// Tag is the subset of file metadata a library track is built from.
type Tag struct {
	Path              string
	Title             string
	Artist            string
	AdditionalArtists []string
	Album             string
}

// IsMusicFile reports whether the path has a supported extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// Track builds a validated library track from the tag and a duration.
// Sub-second parts of d are dropped.
func (t *Tag) Track(d time.Duration) (track.Track, error) {
	tr := track.Track{
		Title:             strings.TrimSpace(t.Title),
		Artist:            strings.TrimSpace(t.Artist),
		Album:             strings.TrimSpace(t.Album),
		Duration:          d.Truncate(time.Second),
		AdditionalArtists: t.AdditionalArtists,
	}
	if err := tr.Validate(); err != nil {
		return track.Track{}, err
	}
	return tr, nil
}

// newTag fills a Tag from raw values. The title falls back to the file name
// without extension. A multi-valued artist ("A; B") keeps the first name as
// the artist and the others as additional artists.
func newTag(path, title, artist, album string) *Tag {
	if strings.TrimSpace(title) == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	names := splitArtists(artist)
	t := &Tag{Path: path, Title: title, Album: album}
	if len(names) > 0 {
		t.Artist = names[0]
		t.AdditionalArtists = names[1:]
	}
	return t
}

func splitArtists(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
