package playlists

import "slices"

// movePlan computes the position updates for moving a set of playlist
// entries by delta. It holds no database state.
type movePlan struct {
	sorted []int // positions to move, ascending
	count  int   // playlist length
	delta  int   // negative = towards the top
}

func newMovePlan(positions []int, count, delta int) movePlan {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	return movePlan{sorted: sorted, count: count, delta: delta}
}

// valid reports whether every moved entry stays inside the playlist.
func (m movePlan) valid() bool {
	if len(m.sorted) == 0 || m.delta == 0 {
		return false
	}
	if m.delta < 0 {
		return m.sorted[0]+m.delta >= 0
	}
	return m.sorted[len(m.sorted)-1]+m.delta < m.count
}

// targets maps positions (in caller order) to their destinations.
func (m movePlan) targets(positions []int) []int {
	out := make([]int, len(positions))
	for i, pos := range positions {
		out[i] = pos + m.delta
	}
	return out
}

// shift moves the entries in [start, end) by delta (+1 or -1).
type shift struct {
	start int
	end   int
	delta int
}

// order lists the positions of the range in an order that never lands on an
// occupied slot: downwards shifts go highest first, upwards shifts lowest first.
func (s shift) order() []int {
	out := make([]int, 0, s.end-s.start)
	if s.delta > 0 {
		for pos := s.end - 1; pos >= s.start; pos-- {
			out = append(out, pos)
		}
		return out
	}
	for pos := s.start; pos < s.end; pos++ {
		out = append(out, pos)
	}
	return out
}

// shifts returns the ranges of non-moving entries that make room for the
// moved ones.
func (m movePlan) shifts() []shift {
	if !m.valid() {
		return nil
	}
	var out []shift
	if m.delta < 0 {
		for _, pos := range m.sorted {
			out = append(out, shift{start: pos + m.delta, end: pos, delta: 1})
		}
		return out
	}
	for i := len(m.sorted) - 1; i >= 0; i-- {
		pos := m.sorted[i]
		out = append(out, shift{start: pos + 1, end: pos + m.delta + 1, delta: -1})
	}
	return out
}
