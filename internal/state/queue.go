package state

import (
	"github.com/llehouerou/trackshelf/internal/queue"
	"github.com/llehouerou/trackshelf/internal/track"
)

const (
	sourceLibrary  = "Library"
	sourcePlaylist = "Playlist"
)

// QueueFile is the saved queue layout.
type QueueFile struct {
	Source            string         `json:"source"`
	PlaylistName      *string        `json:"playlistName"`
	Queue             []track.Record `json:"queue"`
	CurrentTrackIndex int            `json:"currentTrackIndex"`
	Shuffle           bool           `json:"shuffle"`
	Repeat            bool           `json:"repeat"`
	Playing           bool           `json:"playing"`
	OriginalOrder     []int          `json:"originalOrder,omitempty"`
}

// NewQueueFile converts a queue snapshot to its file form.
func NewQueueFile(s queue.Snapshot) QueueFile {
	f := QueueFile{
		Source:            sourceLibrary,
		Queue:             track.ToRecords(s.Tracks),
		CurrentTrackIndex: s.CurrentIndex,
		Shuffle:           s.Shuffle,
		Repeat:            s.Repeat,
		Playing:           s.Playing,
		OriginalOrder:     s.OriginalOrder,
	}
	if name, ok := s.Source.Playlist(); ok {
		f.Source = sourcePlaylist
		f.PlaylistName = &name
	}
	return f
}

// LoadQueue returns the saved queue. A missing or corrupt file yields an
// empty snapshot tagged Library. Invalid track records are dropped and
// indices into the queue are reset.
func (m *Manager) LoadQueue() queue.Snapshot {
	var f QueueFile
	if !m.readJSON(m.path(queueFileName), &f) {
		return queue.Snapshot{Source: queue.LibrarySource()}
	}

	s := queue.Snapshot{
		Source:        queue.LibrarySource(),
		Tracks:        m.decodeTracks(queueFileName, f.Queue),
		CurrentIndex:  f.CurrentTrackIndex,
		Shuffle:       f.Shuffle,
		Repeat:        f.Repeat,
		Playing:       f.Playing,
		OriginalOrder: f.OriginalOrder,
	}
	if f.Source == sourcePlaylist && f.PlaylistName != nil {
		s.Source = queue.PlaylistSource(*f.PlaylistName)
	}
	if len(s.Tracks) != len(f.Queue) {
		s.CurrentIndex = 0
		s.OriginalOrder = nil
	}
	return s
}

// SaveQueue writes the queue state.
func (m *Manager) SaveQueue(s queue.Snapshot) error {
	return m.save(queueFileName, NewQueueFile(s))
}
