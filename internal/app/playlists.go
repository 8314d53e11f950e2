package app

import (
	"fmt"

	"go.uber.org/zap"
)

// AddToPlaylist appends the library track matching title and artist to a
// playlist. It returns false if the playlist already holds that track.
func (s *Session) AddToPlaylist(name, title, artist string) (bool, error) {
	t, ok := s.library.Search(title, artist)
	if !ok {
		return false, fmt.Errorf("%w: %s - %s", ErrTrackNotFound, title, artist)
	}
	added, err := s.playlists.AddTrack(name, t)
	if err != nil {
		return false, err
	}
	if added {
		s.log.Debug("Added to playlist", zap.String("playlist", name), zap.String("title", t.Title))
	}
	return added, nil
}
