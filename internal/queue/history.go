package queue

import "github.com/llehouerou/trackshelf/internal/track"

// Entry is one play event recorded by forward playback.
// Seq grows monotonically, so replaying the same track yields distinct entries.
type Entry struct {
	Seq   uint64
	Track track.Track
}

// History is the LIFO of tracks removed from the queue by NextTrack.
type History struct {
	entries []Entry
	nextSeq uint64
	maxSize int // 0 = unbounded
}

// NewHistory creates a history keeping at most maxSize entries (0 = unbounded).
func NewHistory(maxSize int) *History {
	return &History{maxSize: maxSize, nextSeq: 1}
}

// Push records a play event and trims the oldest entries if over limit.
func (h *History) Push(t track.Track) Entry {
	e := Entry{Seq: h.nextSeq, Track: t}
	h.nextSeq++
	h.entries = append(h.entries, e)

	if h.maxSize > 0 && len(h.entries) > h.maxSize {
		excess := len(h.entries) - h.maxSize
		h.entries = append(h.entries[:0], h.entries[excess:]...)
	}
	return e
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	last := len(h.entries) - 1
	e := h.entries[last]
	h.entries = h.entries[:last]
	return e, true
}

// Peek returns the most recent entry without removing it.
func (h *History) Peek() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy, bottom to top.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Tracks returns the recorded tracks, bottom to top.
func (h *History) Tracks() []track.Track {
	out := make([]track.Track, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Track
	}
	return out
}

// Restore replaces the content with tracks (bottom to top), assigning new
// play-event ids.
func (h *History) Restore(tracks []track.Track) {
	h.entries = h.entries[:0]
	for _, t := range tracks {
		h.Push(t)
	}
}

// Clear drops every entry. Sequence ids keep increasing.
func (h *History) Clear() {
	h.entries = nil
}
