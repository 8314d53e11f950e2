package library

import "github.com/llehouerou/trackshelf/internal/track"

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func updateHeight(n *node) {
	n.height = 1 + max(height(n.left), height(n.right))
}

func balanceFactor(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

//	    n              l
//	   / \            / \
//	  l   c   =>     a   n
//	 / \                / \
//	a   b              b   c
func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	l.right = n
	updateHeight(n)
	updateHeight(l)
	return l
}

func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	r.left = n
	updateHeight(n)
	updateHeight(r)
	return r
}

// rebalance restores |bf| <= 1 at n, assuming both subtrees are AVL trees.
func rebalance(n *node) *node {
	updateHeight(n)
	bf := balanceFactor(n)
	switch {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func insert(n *node, t track.Track, inserted *bool) *node {
	if n == nil {
		*inserted = true
		return &node{track: t, height: 1}
	}
	switch c := track.Compare(t, n.track); {
	case c < 0:
		n.left = insert(n.left, t, inserted)
	case c > 0:
		n.right = insert(n.right, t, inserted)
	default:
		return n
	}
	return rebalance(n)
}

func remove(n *node, t track.Track, removed *bool) *node {
	if n == nil {
		return nil
	}
	switch c := track.Compare(t, n.track); {
	case c < 0:
		n.left = remove(n.left, t, removed)
	case c > 0:
		n.right = remove(n.right, t, removed)
	default:
		*removed = true
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		succ := minNode(n.right)
		n.track = succ.track
		var ignored bool
		n.right = remove(n.right, succ.track, &ignored)
	}
	return rebalance(n)
}

func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}
