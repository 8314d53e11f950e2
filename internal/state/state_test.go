package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/llehouerou/trackshelf/internal/queue"
	"github.com/llehouerou/trackshelf/internal/track"
)

func openTestManager(t *testing.T, log *zap.Logger) *Manager {
	t.Helper()
	if log == nil {
		log = zaptest.NewLogger(t)
	}
	m, err := Open(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func observed(t *testing.T) (*Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	return openTestManager(t, zap.New(core)), logs
}

func sample() []track.Track {
	return []track.Track{
		{Title: "A", Artist: "X", Album: "One", Duration: 61 * time.Second},
		{Title: "B", Artist: "Y", Album: "Two", Duration: 2 * time.Minute, AdditionalArtists: []string{"Z"}},
		{Title: "C", Artist: "X", Album: "One", Duration: 3 * time.Second},
	}
}

func writeRaw(t *testing.T, m *Manager, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(m.path(name), []byte(content), 0o644))
}

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	m, err := Open(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, dir, m.Dir())
	assert.FileExists(t, filepath.Join(dir, dbFileName))

	var version int
	require.NoError(t, m.DB().QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Twice(t *testing.T) {
	dir := t.TempDir()
	m, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	m, err = Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, m.Close())
}

func TestLibrary_RoundTrip(t *testing.T) {
	m := openTestManager(t, nil)

	require.NoError(t, m.SaveLibrary(sample()))
	got := m.LoadLibrary()

	require.Len(t, got, 3)
	for i, want := range sample() {
		assert.True(t, track.Equal(want, got[i]), "track %d: %v != %v", i, want, got[i])
	}
}

func TestLibrary_Missing(t *testing.T) {
	m, logs := observed(t)

	assert.Empty(t, m.LoadLibrary())
	assert.Equal(t, 0, logs.Len(), "a missing file is not a warning")
}

func TestLibrary_Corrupt(t *testing.T) {
	m, logs := observed(t)
	writeRaw(t, m, libraryFileName, `[{"title": "A",`)

	assert.Empty(t, m.LoadLibrary())
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "Corrupt")
}

func TestLibrary_SkipsInvalidRecords(t *testing.T) {
	m, logs := observed(t)
	writeRaw(t, m, libraryFileName, `[
		{"title": "A", "artist": "X", "album": "One", "duration": "01:00"},
		{"title": "B", "artist": "X", "album": "One", "duration": "1:99"},
		{"title": "", "artist": "X", "album": "One", "duration": "01:00"}
	]`)

	got := m.LoadLibrary()
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, 2, logs.FilterMessage("Skipping invalid record").Len())
}

func TestLibrary_LegacyAdditionalArtists(t *testing.T) {
	m := openTestManager(t, nil)
	writeRaw(t, m, libraryFileName, `[
		{"title": "A", "artist": "X", "additional_artists": ["Y"], "album": "One", "duration": "01:00"}
	]`)

	got := m.LoadLibrary()
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Y"}, got[0].AdditionalArtists)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	m := openTestManager(t, nil)

	require.NoError(t, m.SaveLibrary(sample()))
	require.NoError(t, m.SaveLibrary(sample()[:1]))

	entries, err := os.ReadDir(m.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".library.json.")
	}
	assert.Len(t, m.LoadLibrary(), 1)
}

func TestHistory_RoundTrip(t *testing.T) {
	m := openTestManager(t, nil)

	require.NoError(t, m.SaveHistory(sample()))
	got := m.LoadHistory()

	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "C", got[2].Title)
}

func TestQueue_RoundTrip(t *testing.T) {
	m := openTestManager(t, nil)
	s := queue.Snapshot{
		Source:        queue.PlaylistSource("Road"),
		Tracks:        sample(),
		CurrentIndex:  2,
		Shuffle:       true,
		Repeat:        true,
		Playing:       true,
		OriginalOrder: []int{1, 2, 0},
	}

	require.NoError(t, m.SaveQueue(s))
	got := m.LoadQueue()

	assert.Equal(t, s.Source, got.Source)
	assert.Equal(t, 2, got.CurrentIndex)
	assert.True(t, got.Shuffle)
	assert.True(t, got.Repeat)
	assert.True(t, got.Playing)
	assert.Equal(t, []int{1, 2, 0}, got.OriginalOrder)
	require.Len(t, got.Tracks, 3)
}

func TestQueue_FileLayout(t *testing.T) {
	f := NewQueueFile(queue.Snapshot{Source: queue.LibrarySource(), CurrentIndex: -1})

	assert.Equal(t, "Library", f.Source)
	assert.Nil(t, f.PlaylistName)

	f = NewQueueFile(queue.Snapshot{Source: queue.PlaylistSource("Mix")})
	assert.Equal(t, "Playlist", f.Source)
	require.NotNil(t, f.PlaylistName)
	assert.Equal(t, "Mix", *f.PlaylistName)
}

func TestQueue_ReadsPlainFile(t *testing.T) {
	m := openTestManager(t, nil)
	writeRaw(t, m, queueFileName, `{
		"source": "Playlist",
		"playlistName": "Gym",
		"queue": [
			{"title": "A", "artist": "X", "additionalArtists": [], "album": "One", "duration": "03:00"},
			{"title": "B", "artist": "X", "additionalArtists": [], "album": "One", "duration": "04:00"}
		],
		"currentTrackIndex": 1,
		"shuffle": false,
		"repeat": true,
		"playing": false
	}`)

	s := m.LoadQueue()

	assert.Equal(t, queue.PlaylistSource("Gym"), s.Source)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.True(t, s.Repeat)
	assert.Nil(t, s.OriginalOrder)
	require.Len(t, s.Tracks, 2)
}

func TestQueue_CorruptFallsBackToEmptyLibrary(t *testing.T) {
	m, logs := observed(t)
	writeRaw(t, m, queueFileName, `not json`)

	s := m.LoadQueue()

	assert.Equal(t, queue.LibrarySource(), s.Source)
	assert.Empty(t, s.Tracks)
	assert.Equal(t, 1, logs.Len())
}

func TestQueue_DroppedRecordResetsIndices(t *testing.T) {
	m := openTestManager(t, nil)
	writeRaw(t, m, queueFileName, `{
		"source": "Library",
		"playlistName": null,
		"queue": [
			{"title": "A", "artist": "X", "album": "One", "duration": "03:00"},
			{"title": "B", "artist": "X", "album": "One", "duration": "bad"}
		],
		"currentTrackIndex": 1,
		"shuffle": true,
		"repeat": false,
		"playing": true,
		"originalOrder": [1, 0]
	}`)

	s := m.LoadQueue()

	require.Len(t, s.Tracks, 1)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Nil(t, s.OriginalOrder)
}

func TestSaveQueueDeferred_FlushedOnClose(t *testing.T) {
	dir := t.TempDir()
	m, err := Open(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	m.SaveQueueDeferred(queue.Snapshot{Tracks: sample()[:1]}, nil)
	m.SaveQueueDeferred(queue.Snapshot{Tracks: sample()}, sample()[:2])
	require.NoError(t, m.Close())

	m, err = Open(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer m.Close()

	assert.Len(t, m.LoadQueue().Tracks, 3)
	assert.Len(t, m.LoadHistory(), 2)
}
