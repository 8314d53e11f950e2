package track

import (
	"encoding/json"
	"time"
)

// Record is the JSON form of a track used by every persisted file.
type Record struct {
	Title             string   `json:"title"`
	Artist            string   `json:"artist"`
	AdditionalArtists []string `json:"additionalArtists"`
	Album             string   `json:"album"`
	Duration          string   `json:"duration"`
}

// UnmarshalJSON also accepts the older snake_case additional_artists key.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		Legacy []string `json:"additional_artists"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	if len(r.AdditionalArtists) == 0 && len(aux.Legacy) > 0 {
		r.AdditionalArtists = aux.Legacy
	}
	return nil
}

// ToRecord converts a track to its persisted form.
func ToRecord(t Track) Record {
	additional := t.AdditionalArtists
	if additional == nil {
		additional = []string{}
	}
	return Record{
		Title:             t.Title,
		Artist:            t.Artist,
		AdditionalArtists: additional,
		Album:             t.Album,
		Duration:          FormatDuration(t.Duration),
	}
}

// FromRecord validates a persisted record and converts it back to a track.
func FromRecord(r Record) (Track, error) {
	return New(r.Title, r.Artist, r.Album, r.Duration, r.AdditionalArtists...)
}

// ToRecords converts a slice of tracks, preserving order.
func ToRecords(tracks []Track) []Record {
	out := make([]Record, len(tracks))
	for i, t := range tracks {
		out[i] = ToRecord(t)
	}
	return out
}

// PlaylistRecord is the playlist file layout.
type PlaylistRecord struct {
	Name          string   `json:"name"`
	TotalDuration string   `json:"totalDuration"`
	Tracks        []Record `json:"tracks"`
}

// NewPlaylistRecord builds a playlist file from ordered tracks.
func NewPlaylistRecord(name string, tracks []Track) PlaylistRecord {
	var total time.Duration
	for _, t := range tracks {
		total += t.Duration
	}
	return PlaylistRecord{
		Name:          name,
		TotalDuration: FormatDuration(total),
		Tracks:        ToRecords(tracks),
	}
}
