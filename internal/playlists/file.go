package playlists

import (
	"database/sql"
	"fmt"

	dbutil "github.com/llehouerou/trackshelf/internal/db"
	"github.com/llehouerou/trackshelf/internal/track"
)

// Export builds the playlist file of a playlist.
func (p *Playlists) Export(name string) (track.PlaylistRecord, error) {
	tracks, err := p.Tracks(name)
	if err != nil {
		return track.PlaylistRecord{}, err
	}
	return track.NewPlaylistRecord(name, tracks), nil
}

// Import creates a playlist from a playlist file. Every record is validated
// before anything is written; entries repeating a title and artist are
// skipped. Returns the number of tracks stored.
func (p *Playlists) Import(rec track.PlaylistRecord) (int, error) {
	tracks := make([]track.Track, 0, len(rec.Tracks))
	for i, r := range rec.Tracks {
		t, err := track.FromRecord(r)
		if err != nil {
			return 0, fmt.Errorf("track %d: %w", i+1, err)
		}
		tracks = append(tracks, t)
	}

	stored := 0
	err := dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		id, err := p.create(tx, rec.Name)
		if err != nil {
			return err
		}
		for _, t := range tracks {
			added, err := appendTrack(tx, id, t)
			if err != nil {
				return err
			}
			if added {
				stored++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}
