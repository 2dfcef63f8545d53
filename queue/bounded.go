// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package queue

import "fmt"

// Bounded is a fixed-capacity FIFO queue with blocking Push and Pop. It is
// safe for concurrent use by multiple producers and consumers.
type Bounded[T any] struct {
	items chan T
}

// New returns a new Bounded queue of the specified capacity, which must be
// positive.
func New[T any](capacity int) *Bounded[T] {
	if capacity < 1 {
		panic(fmt.Errorf("queue: capacity must be positive, got: %d", capacity))
	}
	return &Bounded[T]{
		items: make(chan T, capacity),
	}
}

// Push appends an item to the tail of the queue, blocking as long as the
// queue is at capacity.
func (q *Bounded[T]) Push(item T) {
	q.items <- item
}

// Pop removes and returns the item at the head of the queue, blocking as long
// as the queue is empty.
func (q *Bounded[T]) Pop() T {
	return <-q.items
}

// Len returns the number of items currently queued. The value is only a
// snapshot and might already be stale when returned.
func (q *Bounded[T]) Len() int { return len(q.items) }

// Cap returns the capacity of the queue.
func (q *Bounded[T]) Cap() int { return cap(q.items) }
