// Package pqueue provides a typed min-priority queue.
package pqueue

import (
	"github.com/emirpasic/gods/queues/priorityqueue"

	"github.com/me/cpusim/pkg/model"
)

// Compare returns a negative number when a should leave the queue before b,
// zero when they are equal and a positive number otherwise.
type Compare[T any] func(a, b T) int

// Queue is a binary min-heap ordered by the comparator given to New.
// It is not safe for concurrent use.
type Queue[T any] struct {
	heap *priorityqueue.Queue
}

// New creates an empty queue ordered by cmp.
func New[T any](cmp Compare[T]) *Queue[T] {
	return &Queue[T]{
		heap: priorityqueue.NewWith(func(a, b interface{}) int {
			return cmp(a.(T), b.(T))
		}),
	}
}

// Push adds v to the queue in O(log n).
func (q *Queue[T]) Push(v T) {
	q.heap.Enqueue(v)
}

// PopMin removes and returns the smallest element.
// Returns model.ErrEmptyQueue if the queue is empty.
func (q *Queue[T]) PopMin() (T, error) {
	v, ok := q.heap.Dequeue()
	if !ok {
		var zero T
		return zero, model.ErrEmptyQueue
	}
	return v.(T), nil
}

// PeekMin returns the smallest element without removing it.
// Returns model.ErrEmptyQueue if the queue is empty.
func (q *Queue[T]) PeekMin() (T, error) {
	v, ok := q.heap.Peek()
	if !ok {
		var zero T
		return zero, model.ErrEmptyQueue
	}
	return v.(T), nil
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	return q.heap.Size()
}

// Empty returns true if nothing is queued.
func (q *Queue[T]) Empty() bool {
	return q.heap.Empty()
}
