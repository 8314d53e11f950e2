package state

import (
	"go.uber.org/zap"

	"github.com/llehouerou/trackshelf/internal/track"
)

// LoadLibrary returns the saved library in file order. Records that fail
// validation are skipped with a warning.
func (m *Manager) LoadLibrary() []track.Track {
	var records []track.Record
	if !m.readJSON(m.path(libraryFileName), &records) {
		return nil
	}
	return m.decodeTracks(libraryFileName, records)
}

// SaveLibrary writes the library, typically in sorted order.
func (m *Manager) SaveLibrary(tracks []track.Track) error {
	return m.save(libraryFileName, track.ToRecords(tracks))
}

// LoadHistory returns the saved recall history, bottom to top.
func (m *Manager) LoadHistory() []track.Track {
	var records []track.Record
	if !m.readJSON(m.path(historyFileName), &records) {
		return nil
	}
	return m.decodeTracks(historyFileName, records)
}

// SaveHistory writes the recall history, bottom to top.
func (m *Manager) SaveHistory(tracks []track.Track) error {
	return m.save(historyFileName, track.ToRecords(tracks))
}

func (m *Manager) decodeTracks(file string, records []track.Record) []track.Track {
	tracks := make([]track.Track, 0, len(records))
	for i, r := range records {
		t, err := track.FromRecord(r)
		if err != nil {
			m.log.Warn("Skipping invalid record",
				zap.String("file", file),
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}
