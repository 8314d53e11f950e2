package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads title, artist and album from a music file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if strings.ToLower(filepath.Ext(path)) == ExtMP3 {
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		}
		// and cannot parse some ffmpeg-created M4A, FLAC and Ogg files
		return readWithTaglib(path)
	}
	return newTag(path, m.Title(), m.Artist(), m.Album()), nil
}

func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	return newTag(path, id3tag.Title(), id3tag.Artist(), id3tag.Album()), nil
}

func readWithTaglib(path string) (*Tag, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	first := func(key string) string {
		if v := raw[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	t := newTag(path, first(taglib.Title), first(taglib.Artist), first(taglib.Album))
	// Vorbis comments carry one ARTIST entry per artist
	if artists := raw[taglib.Artist]; len(artists) > 1 && len(t.AdditionalArtists) == 0 {
		t.AdditionalArtists = splitArtists(strings.Join(artists[1:], ";"))
	}
	return t, nil
}
