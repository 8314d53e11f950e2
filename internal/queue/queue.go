// Package queue implements the playback queue: a doubly linked list with a
// cursor, repeat wrap, deterministic shuffle and a recall history.
package queue

import (
	"time"

	"github.com/llehouerou/trackshelf/internal/track"
)

// State is the observable playback state.
type State int

const (
	StateEmpty State = iota
	StateReady
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// Queue is the playback queue. It is not safe for concurrent use.
type Queue struct {
	list    list
	current *node // nil iff the list is empty
	total   time.Duration

	shuffle bool
	repeat  bool
	playing bool
	source  Source

	// order is the pre-shuffle sequence of live nodes, kept only while
	// shuffle is on.
	order []*node
	seed  uint32

	history *History
}

// Option configures a Queue.
type Option func(*Queue)

// WithSeed sets the shuffle seed.
func WithSeed(seed uint32) Option {
	return func(q *Queue) { q.seed = seed }
}

// WithHistoryLimit bounds the recall history (0 = unbounded).
func WithHistoryLimit(limit int) Option {
	return func(q *Queue) { q.history = NewHistory(limit) }
}

// New creates an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{seed: DefaultSeed}
	for _, opt := range opts {
		opt(q)
	}
	if q.history == nil {
		q.history = NewHistory(0)
	}
	return q
}

// State returns Empty, Ready or Playing.
func (q *Queue) State() State {
	switch {
	case q.list.length == 0:
		return StateEmpty
	case q.playing:
		return StatePlaying
	default:
		return StateReady
	}
}

// AddTrack appends a track. Playback is never started.
func (q *Queue) AddTrack(t track.Track) {
	n := &node{track: t}
	q.list.pushBack(n)
	if q.current == nil {
		q.current = n
	}
	q.total += t.Duration
	if q.shuffle {
		q.order = append(q.order, n)
	}
}

// AddPlaylist appends tracks in order.
func (q *Queue) AddPlaylist(tracks []track.Track) {
	for _, t := range tracks {
		q.AddTrack(t)
	}
}

// Play starts playback. Returns false when there is nothing to play.
func (q *Queue) Play() bool {
	if q.list.length == 0 {
		return false
	}
	q.playing = true
	return true
}

// Pause stops playback. Returns false if it was not playing.
func (q *Queue) Pause() bool {
	if !q.playing {
		return false
	}
	q.playing = false
	return true
}

// NextTrack advances the cursor.
//
// With repeat on the list is untouched and the cursor wraps from tail to head.
// With repeat off the current node is detached and recorded in the history;
// if no successor remains the cursor goes back to the head of what is left
// and playback stops.
//
// Returns whether a next track became current.
func (q *Queue) NextTrack() bool {
	cur := q.current
	if cur == nil {
		return false
	}

	if q.repeat {
		if cur.next != nil {
			q.current = cur.next
		} else {
			q.current = q.list.head
		}
		return true
	}

	succ := cur.next
	q.list.unlink(cur)
	q.dropFromOrder(cur)
	q.history.Push(cur.track)
	q.total -= cur.track.Duration

	if succ != nil {
		q.current = succ
		return true
	}
	q.current = q.list.head
	q.playing = false
	return false
}

// PreviousTrack moves back.
//
// With repeat on the cursor moves to the previous node, wrapping to the tail.
// With repeat off the latest history entry is spliced back in just before the
// cursor and becomes current. Returns false when there is nowhere to go.
func (q *Queue) PreviousTrack() bool {
	if q.repeat {
		if q.current == nil {
			return false
		}
		if q.current.prev != nil {
			q.current = q.current.prev
		} else {
			q.current = q.list.tail
		}
		return true
	}

	e, ok := q.history.Pop()
	if !ok {
		return false
	}
	n := &node{track: e.Track}
	at := q.current
	if at == nil {
		q.list.pushBack(n)
	} else {
		q.list.insertBefore(at, n)
	}
	if q.shuffle {
		q.insertIntoOrder(n, at)
	}
	q.current = n
	q.total += n.track.Duration
	return true
}

// SetShuffle toggles shuffle. Enabling snapshots the current order and
// permutes every node except the current one, which keeps its slot.
// Disabling restores the snapshot. The cached duration is recomputed both ways.
func (q *Queue) SetShuffle(on bool) {
	if on == q.shuffle {
		return
	}
	if on {
		nodes := q.list.nodes()
		q.order = append([]*node(nil), nodes...)
		if len(nodes) > 1 {
			q.list.relink(shuffleAround(nodes, q.indexOf(q.current), q.seed))
		}
	} else {
		q.list.relink(q.order)
		q.order = nil
	}
	q.shuffle = on
	q.recomputeTotal()
}

// SetRepeat toggles repeat.
func (q *Queue) SetRepeat(on bool) {
	q.repeat = on
}

// ClearQueue drops every track and the history, and resets both modes and
// the playing flag. The source tag is kept.
func (q *Queue) ClearQueue() {
	q.list.clear()
	q.current = nil
	q.total = 0
	q.order = nil
	q.shuffle = false
	q.repeat = false
	q.playing = false
	q.history.Clear()
}

// SetSource tags the queue content.
func (q *Queue) SetSource(s Source) {
	q.source = s
}

// Source returns the content tag.
func (q *Queue) Source() Source {
	return q.source
}

// Current returns the track under the cursor.
func (q *Queue) Current() (track.Track, bool) {
	if q.current == nil {
		return track.Track{}, false
	}
	return q.current.track, true
}

// CurrentIndex returns the cursor position (-1 when empty).
func (q *Queue) CurrentIndex() int {
	return q.indexOf(q.current)
}

// Tracks returns the queue content in play order.
func (q *Queue) Tracks() []track.Track {
	out := make([]track.Track, 0, q.list.length)
	for n := q.list.head; n != nil; n = n.next {
		out = append(out, n.track)
	}
	return out
}

// Upcoming returns one page of the tracks after the cursor (page is 1-based)
// and the page count, which is at least 1.
func (q *Queue) Upcoming(page, size int) ([]track.Track, int) {
	if size <= 0 {
		size = 10
	}
	var after []track.Track
	if q.current != nil {
		for n := q.current.next; n != nil; n = n.next {
			after = append(after, n.track)
		}
	}
	pages := max((len(after)+size-1)/size, 1)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(after) {
		return nil, pages
	}
	end := min(start+size, len(after))
	return after[start:end], pages
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return q.list.length
}

// IsEmpty reports whether the queue holds no tracks.
func (q *Queue) IsEmpty() bool {
	return q.list.length == 0
}

// TotalDuration returns the cached sum of queued durations.
func (q *Queue) TotalDuration() time.Duration {
	return q.total
}

// RemainingDuration sums the durations from the cursor to the tail.
func (q *Queue) RemainingDuration() time.Duration {
	var d time.Duration
	for n := q.current; n != nil; n = n.next {
		d += n.track.Duration
	}
	return d
}

// Shuffle reports whether shuffle is on.
func (q *Queue) Shuffle() bool { return q.shuffle }

// Repeat reports whether repeat is on.
func (q *Queue) Repeat() bool { return q.repeat }

// Playing reports whether playback is running.
func (q *Queue) Playing() bool { return q.playing }

// History exposes the recall history.
func (q *Queue) History() *History {
	return q.history
}

func (q *Queue) indexOf(target *node) int {
	if target == nil {
		return -1
	}
	i := 0
	for n := q.list.head; n != nil; n = n.next {
		if n == target {
			return i
		}
		i++
	}
	return -1
}

func (q *Queue) recomputeTotal() {
	var d time.Duration
	for n := q.list.head; n != nil; n = n.next {
		d += n.track.Duration
	}
	q.total = d
}

func (q *Queue) dropFromOrder(n *node) {
	if !q.shuffle {
		return
	}
	for i, o := range q.order {
		if o == n {
			q.order = append(q.order[:i], q.order[i+1:]...)
			return
		}
	}
}

// insertIntoOrder places n just before at in the pre-shuffle order, or at
// the end when at is nil or unknown.
func (q *Queue) insertIntoOrder(n, at *node) {
	for i, o := range q.order {
		if o == at {
			q.order = append(q.order[:i], append([]*node{n}, q.order[i:]...)...)
			return
		}
	}
	q.order = append(q.order, n)
}
