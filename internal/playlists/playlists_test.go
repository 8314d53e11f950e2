//nolint:goconst // test files commonly repeat strings for test data
package playlists

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbutil "github.com/llehouerou/trackshelf/internal/db"
	"github.com/llehouerou/trackshelf/internal/track"
)

// setupTestDB creates an in-memory SQLite database with the playlist tables.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := dbutil.Open(dbutil.Memory)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL,
			last_used_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			additional_artists TEXT,
			UNIQUE(playlist_id, position),
			UNIQUE(playlist_id, title, artist)
		);
	`)
	if err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
	return db
}

func newStore(t *testing.T) *Playlists {
	t.Helper()
	p := New(setupTestDB(t))
	clock := time.Unix(1_700_000_000, 0)
	p.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return p
}

func mk(title, artist string, seconds int) track.Track {
	return track.Track{
		Title:    title,
		Artist:   artist,
		Album:    "Album",
		Duration: time.Duration(seconds) * time.Second,
	}
}

func titlesOf(tracks []track.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Title
	}
	return out
}

func addAll(t *testing.T, p *Playlists, name string, tracks ...track.Track) {
	t.Helper()
	for _, tr := range tracks {
		added, err := p.AddTrack(name, tr)
		require.NoError(t, err)
		require.True(t, added, "track %q not added", tr.Title)
	}
}

func TestPlaylist_Create(t *testing.T) {
	p := newStore(t)

	id, err := p.Create("Road Trip")
	require.NoError(t, err)
	assert.Positive(t, id)

	pl, err := p.Get("Road Trip")
	require.NoError(t, err)
	assert.Equal(t, id, pl.ID)
	assert.Positive(t, pl.CreatedAt)
	assert.Zero(t, pl.LastUsedAt)
	assert.False(t, pl.Used())
}

func TestPlaylist_CreateDuplicate(t *testing.T) {
	p := newStore(t)
	_, err := p.Create("Mix")
	require.NoError(t, err)

	_, err = p.Create("Mix")
	assert.ErrorIs(t, err, ErrExists)
}

func TestPlaylist_CreateEmptyName(t *testing.T) {
	p := newStore(t)

	_, err := p.Create("  ")
	var ve *track.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestPlaylist_Rename(t *testing.T) {
	p := newStore(t)
	_, err := p.Create("Old")
	require.NoError(t, err)
	addAll(t, p, "Old", mk("A", "X", 60))

	require.NoError(t, p.Rename("Old", "New"))

	_, err = p.Get("Old")
	assert.ErrorIs(t, err, ErrNotFound)
	tracks, err := p.Tracks("New")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, titlesOf(tracks))
}

func TestPlaylist_RenameConflicts(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("One")
	_, _ = p.Create("Two")

	assert.ErrorIs(t, p.Rename("One", "Two"), ErrExists)
	assert.ErrorIs(t, p.Rename("Missing", "Three"), ErrNotFound)
	assert.NoError(t, p.Rename("One", "One"))
}

func TestPlaylist_Delete(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Gone")
	addAll(t, p, "Gone", mk("A", "X", 60), mk("B", "X", 60))

	require.NoError(t, p.Delete("Gone"))

	exists, err := p.Exists("Gone")
	require.NoError(t, err)
	assert.False(t, exists)

	var count int
	require.NoError(t, p.db.QueryRow(`SELECT COUNT(*) FROM playlist_tracks`).Scan(&count))
	assert.Equal(t, 0, count, "tracks cascade with the playlist")

	assert.ErrorIs(t, p.Delete("Gone"), ErrNotFound)
}

func TestPlaylist_List(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("beta")
	_, _ = p.Create("Alpha")
	_, _ = p.Create("Empty")
	addAll(t, p, "Alpha", mk("A", "X", 90), mk("B", "X", 30))

	list, err := p.List()
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, 2, list[0].TrackCount)
	assert.Equal(t, 2*time.Minute, list[0].TotalDuration)
	assert.Equal(t, "beta", list[1].Name)
	assert.Equal(t, "Empty", list[2].Name)
	assert.Equal(t, 0, list[2].TrackCount)
	assert.Equal(t, time.Duration(0), list[2].TotalDuration)
}

func TestPlaylist_Touch(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")
	before, err := p.Get("Mix")
	require.NoError(t, err)

	require.NoError(t, p.Touch("Mix"))

	after, err := p.Get("Mix")
	require.NoError(t, err)
	assert.False(t, before.Used())
	assert.True(t, after.Used())
	assert.Greater(t, after.LastUsedAt, before.LastUsedAt)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	assert.ErrorIs(t, p.Touch("Missing"), ErrNotFound)
}

func TestTracks_AddPreservesOrder(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")

	addAll(t, p, "Mix", mk("C", "X", 1), mk("A", "X", 2), mk("B", "X", 3))

	tracks, err := p.Tracks("Mix")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, titlesOf(tracks))

	count, err := p.TrackCount("Mix")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTracks_AddRejectsSameKey(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")
	addAll(t, p, "Mix", mk("Song", "X", 60))

	added, err := p.AddTrack("Mix", track.Track{Title: "Song", Artist: "X", Album: "Other", Duration: time.Minute})
	require.NoError(t, err)
	assert.False(t, added)

	added, err = p.AddTrack("Mix", mk("Song", "Y", 60))
	require.NoError(t, err)
	assert.True(t, added, "another artist is another track")
}

func TestTracks_AddToMissingPlaylist(t *testing.T) {
	p := newStore(t)

	_, err := p.AddTrack("Nope", mk("A", "X", 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTracks_AddInvalid(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")

	_, err := p.AddTrack("Mix", track.Track{Title: "A"})
	var ve *track.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestTracks_AdditionalArtistsRoundTrip(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")
	feat := mk("Duet", "X", 60)
	feat.AdditionalArtists = []string{"Y", "Z"}
	addAll(t, p, "Mix", feat, mk("Solo", "X", 60))

	tracks, err := p.Tracks("Mix")
	require.NoError(t, err)
	assert.Equal(t, []string{"Y", "Z"}, tracks[0].AdditionalArtists)
	assert.Nil(t, tracks[1].AdditionalArtists)
}

func TestTracks_RemoveAt(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")
	addAll(t, p, "Mix", mk("A", "X", 1), mk("B", "X", 1), mk("C", "X", 1), mk("D", "X", 1))

	require.NoError(t, p.RemoveAt("Mix", 1))

	tracks, err := p.Tracks("Mix")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, titlesOf(tracks))

	// Positions stay contiguous, so appending lands at the end.
	addAll(t, p, "Mix", mk("E", "X", 1))
	require.NoError(t, p.RemoveAt("Mix", 3))
	tracks, _ = p.Tracks("Mix")
	assert.Equal(t, []string{"A", "C", "D"}, titlesOf(tracks))

	assert.ErrorIs(t, p.RemoveAt("Mix", 7), ErrNotFound)
}

func TestTracks_RemoveTrackEverywhere(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("One")
	_, _ = p.Create("Two")
	_, _ = p.Create("Three")
	addAll(t, p, "One", mk("A", "X", 1), mk("Gone", "X", 1), mk("B", "X", 1))
	addAll(t, p, "Two", mk("Gone", "X", 1))
	addAll(t, p, "Three", mk("Gone", "Other", 1))

	removed, err := p.RemoveTrackEverywhere(track.Key{Title: "Gone", Artist: "X"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	one, _ := p.Tracks("One")
	assert.Equal(t, []string{"A", "B"}, titlesOf(one))
	two, _ := p.Tracks("Two")
	assert.Empty(t, two)
	three, _ := p.Tracks("Three")
	assert.Equal(t, []string{"Gone"}, titlesOf(three))

	addAll(t, p, "One", mk("C", "X", 1))
	one, _ = p.Tracks("One")
	assert.Equal(t, []string{"A", "B", "C"}, titlesOf(one))
}

func TestTracks_RemoveTrackEverywhereNoMatch(t *testing.T) {
	p := newStore(t)

	removed, err := p.RemoveTrackEverywhere(track.Key{Title: "A", Artist: "X"})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestTracks_MoveDown(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")
	addAll(t, p, "Mix", mk("A", "X", 1), mk("B", "X", 1), mk("C", "X", 1), mk("D", "X", 1), mk("E", "X", 1))

	moved, err := p.Move("Mix", []int{0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, moved)

	tracks, _ := p.Tracks("Mix")
	assert.Equal(t, []string{"C", "D", "A", "B", "E"}, titlesOf(tracks))
}

func TestTracks_MoveUp(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")
	addAll(t, p, "Mix", mk("A", "X", 1), mk("B", "X", 1), mk("C", "X", 1), mk("D", "X", 1), mk("E", "X", 1))

	moved, err := p.Move("Mix", []int{4}, -3)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, moved)

	tracks, _ := p.Tracks("Mix")
	assert.Equal(t, []string{"A", "E", "B", "C", "D"}, titlesOf(tracks))
}

func TestTracks_MoveOutOfBoundsIsNoop(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Mix")
	addAll(t, p, "Mix", mk("A", "X", 1), mk("B", "X", 1))

	moved, err := p.Move("Mix", []int{0}, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, moved)

	tracks, _ := p.Tracks("Mix")
	assert.Equal(t, []string{"A", "B"}, titlesOf(tracks))
}

func TestFile_ExportImport(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Source")
	addAll(t, p, "Source", mk("A", "X", 125), mk("B", "Y", 61))

	rec, err := p.Export("Source")
	require.NoError(t, err)
	assert.Equal(t, "Source", rec.Name)
	assert.Equal(t, "03:06", rec.TotalDuration)
	require.Len(t, rec.Tracks, 2)
	assert.Equal(t, "02:05", rec.Tracks[0].Duration)

	rec.Name = "Copy"
	stored, err := p.Import(rec)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	tracks, err := p.Tracks("Copy")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titlesOf(tracks))
	assert.Equal(t, 125*time.Second, tracks[0].Duration)
}

func TestFile_ImportExistingName(t *testing.T) {
	p := newStore(t)
	_, _ = p.Create("Taken")

	_, err := p.Import(track.PlaylistRecord{Name: "Taken"})
	assert.ErrorIs(t, err, ErrExists)
}

func TestFile_ImportInvalidWritesNothing(t *testing.T) {
	p := newStore(t)
	rec := track.PlaylistRecord{
		Name: "Bad",
		Tracks: []track.Record{
			{Title: "A", Artist: "X", Album: "Al", Duration: "01:00"},
			{Title: "B", Artist: "X", Album: "Al", Duration: "1:75"},
		},
	}

	_, err := p.Import(rec)
	var ve *track.ValidationError
	require.ErrorAs(t, err, &ve)

	exists, err := p.Exists("Bad")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFile_ImportSkipsRepeatedKeys(t *testing.T) {
	p := newStore(t)
	rec := track.PlaylistRecord{
		Name: "Dupes",
		Tracks: []track.Record{
			{Title: "A", Artist: "X", Album: "One", Duration: "01:00"},
			{Title: "A", Artist: "X", Album: "Two", Duration: "02:00"},
		},
	}

	stored, err := p.Import(rec)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)
}
