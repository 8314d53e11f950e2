package queue

import (
	"errors"
	"fmt"
	"time"
)

// Check audits links, length, cursor, cached duration and the pre-shuffle
// order. A non-nil result means the queue is corrupted.
func (q *Queue) Check() error {
	if q.list.head != nil && q.list.head.prev != nil {
		return errors.New("head has a prev link")
	}
	if q.list.tail != nil && q.list.tail.next != nil {
		return errors.New("tail has a next link")
	}

	count := 0
	var total time.Duration
	var last *node
	cursorSeen := false
	live := make(map[*node]bool, q.list.length)
	for n := q.list.head; n != nil; n = n.next {
		if n.prev != last {
			return fmt.Errorf("broken back-link at position %d", count)
		}
		if n == q.current {
			cursorSeen = true
		}
		live[n] = true
		total += n.track.Duration
		last = n
		count++
	}

	switch {
	case last != q.list.tail:
		return errors.New("tail does not match last node")
	case count != q.list.length:
		return fmt.Errorf("length is %d, list holds %d", q.list.length, count)
	case count > 0 && !cursorSeen:
		return errors.New("cursor is not in the list")
	case count == 0 && q.current != nil:
		return errors.New("cursor set on an empty list")
	case total != q.total:
		return fmt.Errorf("cached duration %v, actual %v", q.total, total)
	}

	if q.shuffle {
		if len(q.order) != count {
			return fmt.Errorf("shuffle order holds %d nodes, list %d", len(q.order), count)
		}
		for _, n := range q.order {
			if !live[n] {
				return errors.New("shuffle order references a detached or repeated node")
			}
			delete(live, n)
		}
	}
	return nil
}
