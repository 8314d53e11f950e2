package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/trackshelf/internal/queue"
	"github.com/llehouerou/trackshelf/internal/track"
)

// QueueFromLibrary makes the library the queue content. A saved queue that
// already came from the library resumes as is; otherwise the queue is
// cleared and refilled with the library in sorted order.
func (s *Session) QueueFromLibrary() error {
	if s.switchSource(queue.LibrarySource()) {
		s.queue.AddPlaylist(s.library.Sorted())
	}
	return s.persistQueue()
}

// QueueFromPlaylist makes a playlist the queue content, resuming a saved
// queue of the same playlist.
func (s *Session) QueueFromPlaylist(name string) error {
	tracks, err := s.playlists.Tracks(name)
	if err != nil {
		return err
	}
	if err := s.playlists.Touch(name); err != nil {
		return err
	}
	if s.switchSource(queue.PlaylistSource(name)) {
		s.queue.AddPlaylist(tracks)
	}
	return s.persistQueue()
}

// switchSource clears and re-tags the queue when src differs from its
// current tag or when it is empty. Returns whether the queue needs filling.
func (s *Session) switchSource(src queue.Source) bool {
	if s.queue.Source() == src && !s.queue.IsEmpty() {
		s.log.Debug("Resuming saved queue", zap.Stringer("source", src))
		return false
	}
	s.queue.ClearQueue()
	s.queue.SetSource(src)
	return true
}

// QueueTrack appends the library track matching title and artist.
func (s *Session) QueueTrack(title, artist string) (track.Track, error) {
	t, ok := s.library.Search(title, artist)
	if !ok {
		return track.Track{}, fmt.Errorf("%w: %s - %s", ErrTrackNotFound, title, artist)
	}
	s.queue.AddTrack(t)
	return t, s.persistQueue()
}

// Play starts playback. Returns false when the queue is empty.
func (s *Session) Play() (bool, error) {
	ok := s.queue.Play()
	return ok, s.persistQueue()
}

// Pause stops playback. Returns false if it was not playing.
func (s *Session) Pause() (bool, error) {
	ok := s.queue.Pause()
	return ok, s.persistQueue()
}

// Next advances the queue.
func (s *Session) Next() (bool, error) {
	ok := s.queue.NextTrack()
	return ok, s.persistQueue()
}

// Previous moves back, recalling from the history when repeat is off.
func (s *Session) Previous() (bool, error) {
	ok := s.queue.PreviousTrack()
	return ok, s.persistQueue()
}

// SetShuffle toggles shuffle.
func (s *Session) SetShuffle(on bool) error {
	s.queue.SetShuffle(on)
	return s.persistQueue()
}

// SetRepeat toggles repeat.
func (s *Session) SetRepeat(on bool) error {
	s.queue.SetRepeat(on)
	return s.persistQueue()
}

// ClearQueue empties the queue and its history.
func (s *Session) ClearQueue() error {
	s.queue.ClearQueue()
	return s.persistQueue()
}

// Upcoming returns one page of the tracks after the cursor, using the
// configured page size.
func (s *Session) Upcoming(page int) ([]track.Track, int) {
	return s.queue.Upcoming(page, s.cfg.PageSize)
}

func (s *Session) persistQueue() error {
	s.audit()
	snap := s.queue.Snapshot()
	history := s.queue.History().Tracks()
	if s.deferSaves {
		s.store.SaveQueueDeferred(snap, history)
		return nil
	}
	if err := s.store.SaveQueue(snap); err != nil {
		return fmt.Errorf("save queue: %w", err)
	}
	if err := s.store.SaveHistory(history); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
