package queue

import "github.com/llehouerou/trackshelf/internal/track"

// Snapshot is the persistable queue state. The cursor is an index, never a
// pointer. OriginalOrder is set only while shuffled: OriginalOrder[i] is the
// position in Tracks of the i-th track of the pre-shuffle order.
type Snapshot struct {
	Source        Source
	Tracks        []track.Track
	CurrentIndex  int
	Shuffle       bool
	Repeat        bool
	Playing       bool
	OriginalOrder []int
}

// Snapshot captures the current state.
func (q *Queue) Snapshot() Snapshot {
	s := Snapshot{
		Source:       q.source,
		Tracks:       q.Tracks(),
		CurrentIndex: q.CurrentIndex(),
		Shuffle:      q.shuffle,
		Repeat:       q.repeat,
		Playing:      q.playing,
	}
	if q.shuffle {
		pos := make(map[*node]int, q.list.length)
		i := 0
		for n := q.list.head; n != nil; n = n.next {
			pos[n] = i
			i++
		}
		s.OriginalOrder = make([]int, 0, len(q.order))
		for _, n := range q.order {
			s.OriginalOrder = append(s.OriginalOrder, pos[n])
		}
	}
	return s
}

// Restore replaces the list, cursor, flags and source with the snapshot.
// The history is left alone. An out-of-range index puts the cursor on the
// head; an invalid OriginalOrder falls back to the current order.
func (q *Queue) Restore(s Snapshot) {
	q.list.clear()
	q.current = nil
	q.order = nil

	nodes := make([]*node, len(s.Tracks))
	for i, t := range s.Tracks {
		nodes[i] = &node{track: t}
		q.list.pushBack(nodes[i])
	}
	if len(nodes) > 0 {
		if s.CurrentIndex >= 0 && s.CurrentIndex < len(nodes) {
			q.current = nodes[s.CurrentIndex]
		} else {
			q.current = q.list.head
		}
	}

	q.source = s.Source
	q.repeat = s.Repeat
	q.playing = s.Playing && len(nodes) > 0
	q.shuffle = s.Shuffle
	if q.shuffle {
		if isPermutation(s.OriginalOrder, len(nodes)) {
			q.order = make([]*node, len(nodes))
			for i, p := range s.OriginalOrder {
				q.order[i] = nodes[p]
			}
		} else {
			q.order = append([]*node(nil), nodes...)
		}
	}
	q.recomputeTotal()
}

func isPermutation(idx []int, n int) bool {
	if len(idx) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range idx {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
