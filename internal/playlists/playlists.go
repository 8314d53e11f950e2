// Package playlists stores named, ordered playlists in sqlite.
package playlists

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbutil "github.com/llehouerou/trackshelf/internal/db"
	"github.com/llehouerou/trackshelf/internal/track"
)

var (
	// ErrNotFound is returned when a playlist or position does not exist.
	ErrNotFound = errors.New("playlist not found")
	// ErrExists is returned when a playlist name is already taken.
	ErrExists = errors.New("playlist already exists")
)

// Playlist is the playlist metadata (without tracks).
type Playlist struct {
	ID         int64
	Name       string
	CreatedAt  int64
	LastUsedAt int64 // unix seconds, 0 = never used
}

// Summary is a playlist with its aggregate content.
type Summary struct {
	Playlist
	TrackCount    int
	TotalDuration time.Duration
}

// Used reports whether the playlist was ever queued. LastUsedAt is 0 until
// the first Touch.
func (p Playlist) Used() bool {
	return p.LastUsedAt > 0
}

// LastUsed returns LastUsedAt as a time.
func (p Playlist) LastUsed() time.Time {
	return time.Unix(p.LastUsedAt, 0)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// Playlists provides database operations for playlists.
type Playlists struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Playlists instance on an initialized database.
func New(db *sql.DB) *Playlists {
	return &Playlists{db: db, now: time.Now}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &track.ValidationError{Field: "playlist name", Reason: "must not be empty"}
	}
	return nil
}

// Create creates an empty playlist.
func (p *Playlists) Create(name string) (int64, error) {
	var id int64
	err := dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		var err error
		id, err = p.create(tx, name)
		return err
	})
	return id, err
}

func (p *Playlists) create(tx *sql.Tx, name string) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}
	if _, err := lookupID(tx, name); err == nil {
		return 0, fmt.Errorf("%w: %q", ErrExists, name)
	} else if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	result, err := tx.Exec(`
		INSERT INTO playlists (name, created_at, last_used_at)
		VALUES (?, ?, 0)
	`, name, p.now().Unix())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Rename renames a playlist. The new name must be free.
func (p *Playlists) Rename(oldName, newName string) error {
	if err := validateName(newName); err != nil {
		return err
	}
	return dbutil.WithTx(p.db, func(tx *sql.Tx) error {
		id, err := lookupID(tx, oldName)
		if err != nil {
			return err
		}
		if oldName == newName {
			return nil
		}
		if _, err := lookupID(tx, newName); err == nil {
			return fmt.Errorf("%w: %q", ErrExists, newName)
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		_, err = tx.Exec(`UPDATE playlists SET name = ? WHERE id = ?`, newName, id)
		return err
	})
}

// Delete deletes a playlist and all its tracks.
func (p *Playlists) Delete(name string) error {
	result, err := p.db.Exec(`DELETE FROM playlists WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// List returns every playlist with its track count and duration, by name.
func (p *Playlists) List() ([]Summary, error) {
	rows, err := p.db.Query(`
		SELECT p.id, p.name, p.created_at, p.last_used_at,
			COUNT(pt.id), SUM(pt.duration_seconds)
		FROM playlists p
		LEFT JOIN playlist_tracks pt ON pt.playlist_id = p.id
		GROUP BY p.id
		ORDER BY p.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var seconds sql.NullInt64
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.LastUsedAt, &s.TrackCount, &seconds); err != nil {
			return nil, err
		}
		s.TotalDuration = time.Duration(dbutil.NullInt64Value(seconds)) * time.Second
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns a playlist by name.
func (p *Playlists) Get(name string) (*Playlist, error) {
	row := p.db.QueryRow(`
		SELECT id, name, created_at, last_used_at
		FROM playlists
		WHERE name = ?
	`, name)

	var pl Playlist
	err := row.Scan(&pl.ID, &pl.Name, &pl.CreatedAt, &pl.LastUsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

// Exists reports whether a playlist with that name exists.
func (p *Playlists) Exists(name string) (bool, error) {
	_, err := lookupID(p.db, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Touch updates the last_used_at timestamp of a playlist.
func (p *Playlists) Touch(name string) error {
	result, err := p.db.Exec(`UPDATE playlists SET last_used_at = ? WHERE name = ?`, p.now().Unix(), name)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

func lookupID(q querier, name string) (int64, error) {
	var id int64
	err := q.QueryRow(`SELECT id FROM playlists WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return id, err
}
