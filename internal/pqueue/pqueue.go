// Package pqueue provides a max-oriented priority queue of participant
// magnitudes, used by the settlement engine to find the largest creditor and
// the largest debtor.
package pqueue

import "errors"

// ErrEmptyQueue is returned when extracting from or peeking at an empty queue.
// Reaching it from the settlement loop indicates a defect.
var ErrEmptyQueue = errors.New("priority queue is empty")

// Entry pairs a non-negative magnitude with the participant it belongs to.
type Entry struct {
	Magnitude   int64
	Participant int
}

// Less orders entries by magnitude only.
func (e Entry) Less(other Entry) bool {
	return e.Magnitude < other.Magnitude
}

type node struct {
	entry Entry
	seq   uint64
}

// Queue is an array-backed binary max-heap.
//
// Ties on magnitude are broken by insertion order: of several entries sharing
// the largest magnitude, the one inserted first is extracted first. Re-inserted
// entries get a fresh position in that order.
//
// A Queue is not safe for concurrent use.
type Queue struct {
	nodes []node
	next  uint64
}

// New returns an empty queue with room for capacity entries.
func New(capacity int) *Queue {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue{nodes: make([]node, 0, capacity)}
}

// Len returns the number of entries in the queue.
func (q *Queue) Len() int {
	return len(q.nodes)
}

// IsEmpty reports whether the queue holds no entries.
func (q *Queue) IsEmpty() bool {
	return len(q.nodes) == 0
}

// Insert adds an entry to the queue.
func (q *Queue) Insert(e Entry) {
	q.nodes = append(q.nodes, node{entry: e, seq: q.next})
	q.next++
	q.up(len(q.nodes) - 1)
}

// Peek returns the maximum entry without removing it.
func (q *Queue) Peek() (Entry, error) {
	if len(q.nodes) == 0 {
		return Entry{}, ErrEmptyQueue
	}
	return q.nodes[0].entry, nil
}

// ExtractMax removes and returns the entry with the largest magnitude.
func (q *Queue) ExtractMax() (Entry, error) {
	if len(q.nodes) == 0 {
		return Entry{}, ErrEmptyQueue
	}

	top := q.nodes[0].entry
	last := len(q.nodes) - 1
	q.nodes[0] = q.nodes[last]
	q.nodes = q.nodes[:last]
	if last > 0 {
		q.down(0)
	}
	return top, nil
}

// higher reports whether node i should sit above node j.
func (q *Queue) higher(i, j int) bool {
	a, b := q.nodes[i], q.nodes[j]
	if a.entry.Magnitude != b.entry.Magnitude {
		return b.entry.Less(a.entry)
	}
	return a.seq < b.seq
}

func (q *Queue) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.higher(i, parent) {
			return
		}
		q.nodes[i], q.nodes[parent] = q.nodes[parent], q.nodes[i]
		i = parent
	}
}

func (q *Queue) down(i int) {
	n := len(q.nodes)
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n && q.higher(left, largest) {
			largest = left
		}
		if right < n && q.higher(right, largest) {
			largest = right
		}
		if largest == i {
			return
		}
		q.nodes[i], q.nodes[largest] = q.nodes[largest], q.nodes[i]
		i = largest
	}
}
