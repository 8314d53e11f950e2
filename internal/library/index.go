// Package library holds the track index: an AVL tree ordered by
// (title, artist, album, duration) with (title, artist) dedup.
package library

import (
	"iter"
	"strings"
	"time"

	"github.com/llehouerou/trackshelf/internal/track"
)

type node struct {
	track  track.Track
	left   *node
	right  *node
	height int
}

// Index is an ordered, duplicate-checked collection of tracks.
// It is not safe for concurrent use.
type Index struct {
	root *node
	size int
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// FromTracks bulk-loads tracks with sequential inserts; duplicates are skipped.
func FromTracks(tracks []track.Track) *Index {
	ix := New()
	for _, t := range tracks {
		ix.Insert(t)
	}
	return ix
}

// Len returns the number of tracks.
func (ix *Index) Len() int {
	return ix.size
}

// Height returns the height of the tree (0 when empty).
func (ix *Index) Height() int {
	return height(ix.root)
}

// Contains reports whether an entry with the given dedup key exists.
func (ix *Index) Contains(key track.Key) bool {
	_, ok := ix.Search(key.Title, key.Artist)
	return ok
}

// Insert adds the track unless an entry with the same title and artist exists.
func (ix *Index) Insert(t track.Track) bool {
	if ix.Contains(t.Key()) {
		return false
	}
	var inserted bool
	ix.root = insert(ix.root, t, &inserted)
	if inserted {
		ix.size++
	}
	return inserted
}

// Delete removes the entry equal to t under the comparator.
// Returns false when no such entry exists.
func (ix *Index) Delete(t track.Track) bool {
	var removed bool
	ix.root = remove(ix.root, t, &removed)
	if removed {
		ix.size--
	}
	return removed
}

// Search descends by title, or by (title, artist) when artist is not empty.
// The comparator orders on that prefix first, so the single descent path
// always meets a matching node if one exists.
func (ix *Index) Search(title, artist string) (track.Track, bool) {
	n := ix.root
	for n != nil {
		c := strings.Compare(title, n.track.Title)
		if c == 0 && artist != "" {
			c = strings.Compare(artist, n.track.Artist)
		}
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.track, true
		}
	}
	return track.Track{}, false
}

// Duplicates returns every entry with the given title in ascending order.
// Subtrees that cannot hold the title are skipped.
func (ix *Index) Duplicates(title string) []track.Track {
	var out []track.Track
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		c := strings.Compare(title, n.track.Title)
		if c <= 0 {
			walk(n.left)
		}
		if c == 0 {
			out = append(out, n.track)
		}
		if c >= 0 {
			walk(n.right)
		}
	}
	walk(ix.root)
	return out
}

// All yields the tracks in ascending comparator order.
func (ix *Index) All() iter.Seq[track.Track] {
	return func(yield func(track.Track) bool) {
		inOrder(ix.root, yield)
	}
}

// Sorted returns the tracks in ascending comparator order.
func (ix *Index) Sorted() []track.Track {
	out := make([]track.Track, 0, ix.size)
	for t := range ix.All() {
		out = append(out, t)
	}
	return out
}

// TotalDuration sums every track's duration.
func (ix *Index) TotalDuration() time.Duration {
	return sumDurations(ix.root)
}

func inOrder(n *node, yield func(track.Track) bool) bool {
	if n == nil {
		return true
	}
	return inOrder(n.left, yield) && yield(n.track) && inOrder(n.right, yield)
}

// sumDurations is a post-order walk: children first, then the node.
func sumDurations(n *node) time.Duration {
	if n == nil {
		return 0
	}
	left := sumDurations(n.left)
	right := sumDurations(n.right)
	return left + right + n.track.Duration
}
