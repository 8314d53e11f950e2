package playlists

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	dbutil "github.com/llehouerou/trackshelf/internal/db"
	"github.com/llehouerou/trackshelf/internal/track"
)

// Tracks returns the tracks of a playlist in order.
func (p *Playlists) Tracks(name string) ([]track.Track, error) {
	id, err := lookupID(p.db, name)
	if err != nil {
		return nil, err
	}

	rows, err := p.db.Query(`
		SELECT title, artist, album, duration_seconds, additional_artists
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []track.Track
	for rows.Next() {
		var t track.Track
		var seconds int64
		var additional sql.NullString
		if err := rows.Scan(&t.Title, &t.Artist, &t.Album, &seconds, &additional); err != nil {
			return nil, err
		}
		t.Duration = time.Duration(seconds) * time.Second
		if s := dbutil.NullStringValue(additional); s != "" {
			if err := json.Unmarshal([]byte(s), &t.AdditionalArtists); err != nil {
				return nil, fmt.Errorf("decode additional artists of %q: %w", t.Title, err)
			}
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// TrackCount returns the number of tracks in a playlist.
func (p *Playlists) TrackCount(name string) (int, error) {
	id, err := lookupID(p.db, name)
	if err != nil {
		return 0, err
	}
	return trackCount(p.db, id)
}

func trackCount(q querier, playlistID int64) (int, error) {
	var count int
	err := q.QueryRow(`
		SELECT COUNT(*) FROM playlist_tracks WHERE playlist_id = ?
	`, playlistID).Scan(&count)
	return count, err
}

// AddTrack appends a track to a playlist. A track with the same title and
// artist already in that playlist is left alone and false is returned.
func (p *Playlists) AddTrack(name string, t track.Track) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	var added bool
	err := dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		id, err := lookupID(tx, name)
		if err != nil {
			return err
		}
		added, err = appendTrack(tx, id, t)
		return err
	})
	return added, err
}

func appendTrack(tx *sql.Tx, playlistID int64, t track.Track) (bool, error) {
	var dup int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM playlist_tracks
		WHERE playlist_id = ? AND title = ? AND artist = ?
	`, playlistID, t.Title, t.Artist).Scan(&dup)
	if err != nil {
		return false, err
	}
	if dup > 0 {
		return false, nil
	}

	var maxPos sql.NullInt64
	err = tx.QueryRow(`
		SELECT MAX(position) FROM playlist_tracks WHERE playlist_id = ?
	`, playlistID).Scan(&maxPos)
	if err != nil {
		return false, err
	}
	nextPos := dbutil.NullInt64Value(maxPos)
	if maxPos.Valid {
		nextPos++
	}

	var additional any
	if len(t.AdditionalArtists) > 0 {
		b, err := json.Marshal(t.AdditionalArtists)
		if err != nil {
			return false, err
		}
		additional = string(b)
	}

	_, err = tx.Exec(`
		INSERT INTO playlist_tracks
			(playlist_id, position, title, artist, album, duration_seconds, additional_artists)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, playlistID, nextPos, t.Title, t.Artist, t.Album, t.Seconds(), additional)
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAt removes the track at the given 0-based position from a playlist.
func (p *Playlists) RemoveAt(name string, position int) error {
	return dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		id, err := lookupID(tx, name)
		if err != nil {
			return err
		}
		result, err := tx.Exec(`
			DELETE FROM playlist_tracks WHERE playlist_id = ? AND position = ?
		`, id, position)
		if err != nil {
			return err
		}
		if n, err := result.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("%w: %q has no position %d", ErrNotFound, name, position)
		}
		return closeGap(tx, id, position)
	})
}

// RemoveTrackEverywhere deletes the track with the given key from every
// playlist and returns how many entries were removed.
func (p *Playlists) RemoveTrackEverywhere(key track.Key) (int, error) {
	removed := 0
	err := dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		rows, err := tx.Query(`
			SELECT playlist_id, position FROM playlist_tracks
			WHERE title = ? AND artist = ?
			ORDER BY playlist_id, position DESC
		`, key.Title, key.Artist)
		if err != nil {
			return err
		}
		type hit struct {
			playlistID int64
			position   int
		}
		var hits []hit
		for rows.Next() {
			var h hit
			if err := rows.Scan(&h.playlistID, &h.position); err != nil {
				rows.Close()
				return err
			}
			hits = append(hits, h)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, h := range hits {
			if _, err := tx.Exec(`
				DELETE FROM playlist_tracks WHERE playlist_id = ? AND position = ?
			`, h.playlistID, h.position); err != nil {
				return err
			}
			if err := closeGap(tx, h.playlistID, h.position); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// closeGap shifts every track after position one slot up, in ascending
// order so the (playlist_id, position) constraint holds at each step.
func closeGap(tx *sql.Tx, playlistID int64, position int) error {
	rows, err := tx.Query(`
		SELECT position FROM playlist_tracks
		WHERE playlist_id = ? AND position > ?
		ORDER BY position
	`, playlistID, position)
	if err != nil {
		return err
	}
	var after []int
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			rows.Close()
			return err
		}
		after = append(after, pos)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, pos := range after {
		if _, err := tx.Exec(`
			UPDATE playlist_tracks SET position = position - 1
			WHERE playlist_id = ? AND position = ?
		`, playlistID, pos); err != nil {
			return err
		}
	}
	return nil
}

// Move shifts the tracks at the given positions by delta and returns their
// new positions. A move that would leave the playlist bounds is a no-op.
func (p *Playlists) Move(name string, positions []int, delta int) ([]int, error) {
	if len(positions) == 0 || delta == 0 {
		return positions, nil
	}

	var moved []int
	err := dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		id, err := lookupID(tx, name)
		if err != nil {
			return err
		}
		count, err := trackCount(tx, id)
		if err != nil {
			return err
		}

		plan := newMovePlan(positions, count, delta)
		if !plan.valid() {
			moved = positions
			return nil
		}

		// Park the moving tracks on negative positions while the others shift.
		for i, pos := range plan.sorted {
			if err := setPosition(tx, id, pos, -(i + 1)); err != nil {
				return err
			}
		}
		for _, s := range plan.shifts() {
			for _, pos := range s.order() {
				if err := setPosition(tx, id, pos, pos+s.delta); err != nil {
					return err
				}
			}
		}
		for i, pos := range plan.sorted {
			if err := setPosition(tx, id, -(i + 1), pos+delta); err != nil {
				return err
			}
		}
		moved = plan.targets(positions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func setPosition(tx *sql.Tx, playlistID int64, from, to int) error {
	_, err := tx.Exec(`
		UPDATE playlist_tracks SET position = ?
		WHERE playlist_id = ? AND position = ?
	`, to, playlistID, from)
	return err
}
