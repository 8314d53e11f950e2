package library

import (
	"fmt"

	"github.com/llehouerou/trackshelf/internal/track"
)

// Check audits the tree: cached heights, AVL balance, ascending order and
// the element count. A non-nil result means the index is corrupted.
func (ix *Index) Check() error {
	count := 0
	var prev *track.Track
	var walk func(n *node) (int, error)
	walk = func(n *node) (int, error) {
		if n == nil {
			return 0, nil
		}
		lh, err := walk(n.left)
		if err != nil {
			return 0, err
		}
		if prev != nil && track.Compare(*prev, n.track) >= 0 {
			return 0, fmt.Errorf("order violated at %q: previous %q", n.track, *prev)
		}
		cur := n.track
		prev = &cur
		count++
		rh, err := walk(n.right)
		if err != nil {
			return 0, err
		}
		h := 1 + max(lh, rh)
		if n.height != h {
			return 0, fmt.Errorf("height of %q is %d, want %d", n.track, n.height, h)
		}
		if bf := lh - rh; bf > 1 || bf < -1 {
			return 0, fmt.Errorf("balance factor of %q is %d", n.track, bf)
		}
		return h, nil
	}
	if _, err := walk(ix.root); err != nil {
		return err
	}
	if count != ix.size {
		return fmt.Errorf("size is %d, tree holds %d", ix.size, count)
	}
	return nil
}
