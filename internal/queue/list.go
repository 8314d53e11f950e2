package queue

import "github.com/llehouerou/trackshelf/internal/track"

// node is a queue entry. next is the forward link; prev is only a back-link
// and every unlink rewires both neighbours in the same call.
type node struct {
	track track.Track
	prev  *node
	next  *node
}

// list is the doubly linked list backing the queue.
type list struct {
	head   *node
	tail   *node
	length int
}

func (l *list) pushBack(n *node) {
	n.prev = l.tail
	n.next = nil
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.length++
}

// insertBefore splices n immediately before at. at must be in the list.
func (l *list) insertBefore(at, n *node) {
	n.next = at
	n.prev = at.prev
	if at.prev != nil {
		at.prev.next = n
	} else {
		l.head = n
	}
	at.prev = n
	l.length++
}

// unlink detaches n and relinks its neighbours.
func (l *list) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	l.length--
}

// relink rebuilds the list in the given node order.
func (l *list) relink(nodes []*node) {
	l.head, l.tail, l.length = nil, nil, 0
	for _, n := range nodes {
		l.pushBack(n)
	}
}

func (l *list) nodes() []*node {
	out := make([]*node, 0, l.length)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n)
	}
	return out
}

func (l *list) clear() {
	l.head, l.tail, l.length = nil, nil, 0
}
