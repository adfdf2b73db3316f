// Package queue provides a value-based binary heap that orders items by a
// float64 priority, highest first, with FIFO order among equal priorities.
package queue

import "math"

// Item is an entry of the queue.
type Item[T any] struct {
	Value    T       // Value is the payload of the item.
	Priority float64 // Priority orders items, highest first. NaN sorts last.
	Seq      uint64  // Seq breaks ties, lowest first.
}

// PriorityQueue is a binary max-heap over Item priorities.
// It is not safe for concurrent use.
type PriorityQueue[T any] struct {
	items []Item[T] // Value-based storage (no pointer indirection)
}

// New creates an empty queue with room for capacity items.
func New[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		items: make([]Item[T], 0, max(capacity, 0)),
	}
}

// Len returns the number of items in the queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

// Top returns the first item without removing it.
func (pq *PriorityQueue[T]) Top() (Item[T], bool) {
	if len(pq.items) == 0 {
		return Item[T]{}, false
	}
	return pq.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[T]) Push(item Item[T]) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// Pop removes and returns the first item while maintaining the heap invariant.
func (pq *PriorityQueue[T]) Pop() (Item[T], bool) {
	n := len(pq.items)
	if n == 0 {
		return Item[T]{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item[T]{}
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Drain removes and returns all items in queue order.
func (pq *PriorityQueue[T]) Drain() []Item[T] {
	out := make([]Item[T], 0, len(pq.items))
	for {
		it, ok := pq.Pop()
		if !ok {
			return out
		}
		out = append(out, it)
	}
}

// Before reports whether a is dequeued before b.
func Before[T any](a, b Item[T]) bool {
	an, bn := math.IsNaN(a.Priority), math.IsNaN(b.Priority)
	switch {
	case an != bn:
		return bn
	case !an && a.Priority != b.Priority:
		return a.Priority > b.Priority
	default:
		return a.Seq < b.Seq
	}
}

func (pq *PriorityQueue[T]) less(i, j int) bool {
	return Before(pq.items[i], pq.items[j])
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
