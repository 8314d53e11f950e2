// internal/queue/queue_test.go
//
//nolint:goconst // test file with repeated string literals
package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/trackshelf/internal/track"
)

func tr(title string) track.Track {
	return track.Track{Title: title, Artist: "Artist", Album: "Album", Duration: time.Minute}
}

func trd(title string, d time.Duration) track.Track {
	return track.Track{Title: title, Artist: "Artist", Album: "Album", Duration: d}
}

func titles(tracks []track.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Title
	}
	return out
}

func currentTitle(t *testing.T, q *Queue) string {
	t.Helper()
	cur, ok := q.Current()
	require.True(t, ok, "queue should have a current track")
	return cur.Title
}

func newQueue(t *testing.T, names ...string) *Queue {
	t.Helper()
	q := New()
	for _, n := range names {
		q.AddTrack(tr(n))
	}
	require.NoError(t, q.Check())
	return q
}

func TestNew(t *testing.T) {
	q := New()

	assert.Equal(t, StateEmpty, q.State())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, -1, q.CurrentIndex())
	_, ok := q.Current()
	assert.False(t, ok)
	assert.Equal(t, LibrarySource(), q.Source())
	require.NoError(t, q.Check())
}

func TestAddTrack_DoesNotStartPlayback(t *testing.T) {
	q := newQueue(t, "A", "B")

	assert.Equal(t, StateReady, q.State())
	assert.False(t, q.Playing())
	assert.Equal(t, "A", currentTitle(t, q))
	assert.Equal(t, 2*time.Minute, q.TotalDuration())
}

func TestPlay_Empty(t *testing.T) {
	q := New()

	assert.False(t, q.Play())
	assert.Equal(t, StateEmpty, q.State())
}

func TestPlayPause(t *testing.T) {
	q := newQueue(t, "A")

	require.True(t, q.Play())
	assert.Equal(t, StatePlaying, q.State())

	require.True(t, q.Pause())
	assert.Equal(t, StateReady, q.State())
	assert.False(t, q.Pause(), "pausing twice is a no-op")
}

func TestCursorSequence(t *testing.T) {
	q := newQueue(t, "A", "B", "C")
	require.True(t, q.Play())
	assert.Equal(t, "A", currentTitle(t, q))

	require.True(t, q.NextTrack())
	assert.Equal(t, "B", currentTitle(t, q))
	assert.Equal(t, []string{"A"}, titles(q.History().Tracks()))
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 2*time.Minute, q.TotalDuration())
	require.NoError(t, q.Check())

	require.True(t, q.PreviousTrack())
	assert.Equal(t, "A", currentTitle(t, q))
	assert.Equal(t, []string{"A", "B", "C"}, titles(q.Tracks()))
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 0, q.History().Len())
	assert.Equal(t, 3*time.Minute, q.TotalDuration())
	require.NoError(t, q.Check())
}

func TestNextTrack_LastTrackStops(t *testing.T) {
	q := newQueue(t, "A")
	q.Play()

	assert.False(t, q.NextTrack())
	assert.Equal(t, StateEmpty, q.State())
	assert.False(t, q.Playing())
	assert.Equal(t, time.Duration(0), q.TotalDuration())
	assert.Equal(t, 1, q.History().Len())
	require.NoError(t, q.Check())

	// The removed track can still be recalled.
	require.True(t, q.PreviousTrack())
	assert.Equal(t, "A", currentTitle(t, q))
	assert.Equal(t, StateReady, q.State())
}

func TestNextTrack_TailWithPredecessors(t *testing.T) {
	q := newQueue(t, "A", "B", "C")
	q.Restore(Snapshot{Tracks: q.Tracks(), CurrentIndex: 2, Playing: true})

	assert.False(t, q.NextTrack())
	assert.False(t, q.Playing())
	assert.Equal(t, "A", currentTitle(t, q), "cursor returns to the head")
	assert.Equal(t, []string{"A", "B"}, titles(q.Tracks()))
	require.NoError(t, q.Check())
}

func TestNextTrack_Empty(t *testing.T) {
	q := New()
	assert.False(t, q.NextTrack())
	assert.Equal(t, 0, q.History().Len())
}

func TestPreviousTrack_EmptyHistory(t *testing.T) {
	q := newQueue(t, "A", "B")

	assert.False(t, q.PreviousTrack())
	assert.Equal(t, "A", currentTitle(t, q))
	assert.Equal(t, 2, q.Len())
}

func TestPreviousTrack_SplicesBeforeCursor(t *testing.T) {
	q := newQueue(t, "A", "B", "C", "D")
	q.NextTrack() // A -> history
	q.NextTrack() // B -> history

	require.Equal(t, "C", currentTitle(t, q))
	require.True(t, q.PreviousTrack())
	assert.Equal(t, []string{"B", "C", "D"}, titles(q.Tracks()))
	assert.Equal(t, "B", currentTitle(t, q))

	require.True(t, q.PreviousTrack())
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(q.Tracks()))
	assert.Equal(t, 0, q.CurrentIndex())
	require.NoError(t, q.Check())
}

func TestRepeat_Wraps(t *testing.T) {
	q := newQueue(t, "A", "B", "C")
	q.SetRepeat(true)
	q.Play()

	for range 3 {
		require.True(t, q.NextTrack())
	}
	assert.Equal(t, "A", currentTitle(t, q))
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 0, q.History().Len())
	assert.Equal(t, 3*time.Minute, q.TotalDuration())
}

func TestRepeat_PreviousWrapsToTail(t *testing.T) {
	q := newQueue(t, "A", "B", "C")
	q.SetRepeat(true)

	require.True(t, q.PreviousTrack())
	assert.Equal(t, "C", currentTitle(t, q))
	require.True(t, q.PreviousTrack())
	assert.Equal(t, "B", currentTitle(t, q))
	assert.Equal(t, 3, q.Len())
}

func TestRepeat_Empty(t *testing.T) {
	q := New()
	q.SetRepeat(true)

	assert.False(t, q.NextTrack())
	assert.False(t, q.PreviousTrack())
}

func TestHistory_SameTrackRecordedTwice(t *testing.T) {
	q := New()
	q.AddTrack(tr("Loop"))
	q.AddTrack(tr("Loop"))
	q.AddTrack(tr("End"))

	q.NextTrack()
	q.NextTrack()

	entries := q.History().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Loop", entries[0].Track.Title)
	assert.Equal(t, "Loop", entries[1].Track.Title)
	assert.Less(t, entries[0].Seq, entries[1].Seq)
}

func TestHistory_Limit(t *testing.T) {
	q := New(WithHistoryLimit(2))
	q.AddPlaylist([]track.Track{tr("A"), tr("B"), tr("C"), tr("D")})

	q.NextTrack()
	q.NextTrack()
	q.NextTrack()

	assert.Equal(t, []string{"B", "C"}, titles(q.History().Tracks()))
}

func TestShuffle_Reversible(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for size := 2; size <= len(names); size++ {
		q := newQueue(t, names[:size]...)
		before := titles(q.Tracks())

		q.SetShuffle(true)
		require.NoError(t, q.Check())
		q.SetShuffle(false)

		assert.Equal(t, before, titles(q.Tracks()), "size %d", size)
		require.NoError(t, q.Check())
	}
}

func TestShuffle_DeterministicOrder(t *testing.T) {
	q := newQueue(t, "A", "B", "C", "D", "E")

	q.SetShuffle(true)

	// Seed 1337, current track A pinned at slot 0.
	assert.Equal(t, []string{"A", "C", "E", "B", "D"}, titles(q.Tracks()))
	assert.Equal(t, "A", currentTitle(t, q))
}

func TestShuffle_SameSeedSameOrder(t *testing.T) {
	a := New(WithSeed(99))
	b := New(WithSeed(99))
	for _, n := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		a.AddTrack(tr(n))
		b.AddTrack(tr(n))
	}

	a.SetShuffle(true)
	b.SetShuffle(true)

	assert.Equal(t, titles(a.Tracks()), titles(b.Tracks()))
}

func TestShuffle_CurrentKeepsSlot(t *testing.T) {
	q := newQueue(t, "A", "B", "C", "D", "E", "F")
	q.Restore(Snapshot{Tracks: q.Tracks(), CurrentIndex: 3})
	require.Equal(t, "D", currentTitle(t, q))

	q.SetShuffle(true)

	assert.Equal(t, 3, q.CurrentIndex())
	assert.Equal(t, "D", currentTitle(t, q))
	assert.ElementsMatch(t, []string{"A", "B", "C", "D", "E", "F"}, titles(q.Tracks()))
}

func TestShuffle_SingleTrack(t *testing.T) {
	q := newQueue(t, "A")

	q.SetShuffle(true)
	assert.True(t, q.Shuffle())
	assert.Equal(t, []string{"A"}, titles(q.Tracks()))

	q.SetShuffle(false)
	assert.Equal(t, []string{"A"}, titles(q.Tracks()))
}

func TestShuffle_MutationsWhileShuffled(t *testing.T) {
	q := newQueue(t, "A", "B", "C", "D", "E")
	q.SetShuffle(true)

	q.NextTrack() // removes A (current, pinned at slot 0)
	q.AddTrack(tr("F"))
	q.PreviousTrack() // A comes back before the cursor
	q.NextTrack()     // and leaves again
	require.NoError(t, q.Check())

	cur := currentTitle(t, q)
	q.SetShuffle(false)

	assert.Equal(t, []string{"B", "C", "D", "E", "F"}, titles(q.Tracks()))
	assert.Equal(t, cur, currentTitle(t, q), "cursor stays on the same track")
	assert.Equal(t, 5*time.Minute, q.TotalDuration())
	require.NoError(t, q.Check())
}

func TestShuffle_RecalledTrackRejoinsOrder(t *testing.T) {
	q := newQueue(t, "A", "B", "C")
	q.NextTrack() // A -> history, cursor on B
	q.SetShuffle(true)

	q.PreviousTrack()
	q.SetShuffle(false)

	assert.Equal(t, []string{"A", "B", "C"}, titles(q.Tracks()))
	assert.Equal(t, "A", currentTitle(t, q))
}

func TestShuffle_RecomputesDuration(t *testing.T) {
	q := New()
	q.AddTrack(trd("A", 3*time.Minute))
	q.AddTrack(trd("B", 4*time.Minute))
	q.total = time.Hour // simulate drift

	q.SetShuffle(true)
	assert.Equal(t, 7*time.Minute, q.TotalDuration())
}

func TestClearQueue(t *testing.T) {
	q := newQueue(t, "A", "B", "C")
	q.SetSource(PlaylistSource("Mix"))
	q.Play()
	q.NextTrack()
	q.SetRepeat(true)
	q.SetShuffle(true)

	q.ClearQueue()

	assert.Equal(t, StateEmpty, q.State())
	assert.False(t, q.Shuffle())
	assert.False(t, q.Repeat())
	assert.False(t, q.Playing())
	assert.Equal(t, 0, q.History().Len())
	assert.Equal(t, time.Duration(0), q.TotalDuration())
	assert.Equal(t, PlaylistSource("Mix"), q.Source())
	require.NoError(t, q.Check())
}

func TestUpcoming(t *testing.T) {
	q := newQueue(t, "A", "B", "C", "D", "E")

	page, pages := q.Upcoming(1, 3)
	assert.Equal(t, []string{"B", "C", "D"}, titles(page))
	assert.Equal(t, 2, pages)

	page, _ = q.Upcoming(2, 3)
	assert.Equal(t, []string{"E"}, titles(page))

	page, _ = q.Upcoming(3, 3)
	assert.Empty(t, page)

	empty := New()
	page, pages = empty.Upcoming(1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, pages)
}

func TestRemainingDuration(t *testing.T) {
	q := New()
	q.AddTrack(trd("A", time.Minute))
	q.AddTrack(trd("B", 2*time.Minute))
	q.AddTrack(trd("C", 3*time.Minute))
	q.Restore(Snapshot{Tracks: q.Tracks(), CurrentIndex: 1})

	assert.Equal(t, 5*time.Minute, q.RemainingDuration())
	assert.Equal(t, 6*time.Minute, q.TotalDuration())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Empty", StateEmpty.String())
	assert.Equal(t, "Ready", StateReady.String())
	assert.Equal(t, "Playing", StatePlaying.String())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestSource(t *testing.T) {
	lib := LibrarySource()
	_, ok := lib.Playlist()
	assert.False(t, ok)
	assert.Equal(t, "Library", lib.String())
	assert.Equal(t, lib, Source{})

	pl := PlaylistSource("Road")
	name, ok := pl.Playlist()
	assert.True(t, ok)
	assert.Equal(t, "Road", name)
	assert.Equal(t, SourcePlaylist, pl.Kind())
	assert.NotEqual(t, pl, PlaylistSource("Other"))
}
