package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/llehouerou/trackshelf/internal/track"
)

// RemoveReport describes a library removal and its playlist sweep.
type RemoveReport struct {
	Track           track.Track
	PlaylistEntries int   // entries removed from playlists
	SweepErr        error // set when the playlist sweep failed
}

// AddTrack inserts a validated track. It returns false when a track with the
// same title and artist is already in the library.
func (s *Session) AddTrack(t track.Track) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	if !s.library.Insert(t) {
		return false, nil
	}
	s.audit()
	if err := s.saveLibrary(); err != nil {
		return true, err
	}
	s.log.Info("Track added", zap.String("title", t.Title), zap.String("artist", t.Artist))
	return true, nil
}

// RemoveTrack deletes the library track matching title and artist, then
// removes it from every playlist. The library deletion stands even if the
// sweep fails; the failure is reported in RemoveReport.SweepErr. Both title
// and artist are required.
func (s *Session) RemoveTrack(title, artist string) (RemoveReport, error) {
	if strings.TrimSpace(title) == "" {
		return RemoveReport{}, &track.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(artist) == "" {
		return RemoveReport{}, &track.ValidationError{Field: "artist", Reason: "must not be empty"}
	}
	t, ok := s.library.Search(title, artist)
	if !ok {
		return RemoveReport{}, fmt.Errorf("%w: %s - %s", ErrTrackNotFound, title, artist)
	}

	s.library.Delete(t)
	s.audit()
	report := RemoveReport{Track: t}
	if err := s.saveLibrary(); err != nil {
		return report, err
	}

	n, err := s.playlists.RemoveTrackEverywhere(t.Key())
	if err != nil {
		s.log.Warn("Playlist sweep failed", zap.String("title", t.Title), zap.Error(err))
		report.SweepErr = err
		return report, nil
	}
	report.PlaylistEntries = n
	s.log.Info("Track removed",
		zap.String("title", t.Title),
		zap.String("artist", t.Artist),
		zap.Int("playlistEntries", n))
	return report, nil
}

// SearchTrack finds a track by title, and by artist too when artist is not
// empty.
func (s *Session) SearchTrack(title, artist string) (track.Track, bool) {
	return s.library.Search(title, artist)
}

// Duplicates returns every library track with the given title, in order.
func (s *Session) Duplicates(title string) []track.Track {
	return s.library.Duplicates(title)
}

// SortedTracks returns the library in comparator order.
func (s *Session) SortedTracks() []track.Track {
	return s.library.Sorted()
}

// LibraryLen returns the number of library tracks.
func (s *Session) LibraryLen() int {
	return s.library.Len()
}

// TotalDuration returns the library duration as "MM:SS".
func (s *Session) TotalDuration() string {
	return track.FormatDuration(s.library.TotalDuration())
}

func (s *Session) saveLibrary() error {
	if err := s.store.SaveLibrary(s.library.Sorted()); err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	return nil
}
