package render

import (
	"strconv"
	"strings"

	"github.com/llehouerou/trackshelf/internal/track"
)

// Columns holds the cell widths of a track table. Duration is always
// rendered as MM:SS and needs no width.
type Columns struct {
	Title  int
	Artist int
	Album  int
}

const durationWidth = 5

// ColumnsFor splits width between title, artist and album in a 4:3:3 ratio
// after reserving the duration column and the separating spaces.
func ColumnsFor(width int) Columns {
	avail := max(width-durationWidth-3, 12)
	title := avail * 4 / 10
	artist := avail * 3 / 10
	return Columns{Title: title, Artist: artist, Album: avail - title - artist}
}

// TrackLine renders one track across the columns.
func TrackLine(t track.Track, c Columns) string {
	artist := t.Artist
	if len(t.AdditionalArtists) > 0 {
		artist += ", " + strings.Join(t.AdditionalArtists, ", ")
	}
	return Fit(t.Title, c.Title) + " " +
		Fit(artist, c.Artist) + " " +
		Fit(t.Album, c.Album) + " " +
		track.FormatDuration(t.Duration)
}

// TrackHeader renders the column titles matching TrackLine.
func TrackHeader(c Columns) string {
	return Fit("Title", c.Title) + " " +
		Fit("Artist", c.Artist) + " " +
		Fit("Album", c.Album) + " " +
		Pad("Time", durationWidth)
}

// TrackTable renders a header, a separator and one line per track.
// Lines are numbered from first when first is positive.
func TrackTable(tracks []track.Track, width, first int) string {
	var b strings.Builder
	prefix := 0
	if first > 0 {
		prefix = len(strconv.Itoa(first+len(tracks)-1)) + 2
	}
	c := ColumnsFor(width - prefix)
	b.WriteString(strings.Repeat(" ", prefix))
	b.WriteString(TrackHeader(c))
	b.WriteByte('\n')
	b.WriteString(Separator(width))
	for i, t := range tracks {
		b.WriteByte('\n')
		if prefix > 0 {
			b.WriteString(Pad(strconv.Itoa(first+i)+".", prefix))
		}
		b.WriteString(TrackLine(t, c))
	}
	return b.String()
}
