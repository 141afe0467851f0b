// Package collection provides utility data structures.
package collection

import (
	"container/list"
)

// Queue is a FIFO queue that accepts each key at most once over its
// lifetime, so items pushed again after being popped are still skipped.
type Queue[T any, K comparable] struct {
	data list.List
	key  func(T) K
	seen map[K]struct{}
}

func NewQueue[T any, K comparable](key func(T) K) *Queue[T, K] {
	return &Queue[T, K]{
		key:  key,
		seen: make(map[K]struct{}),
	}
}

// Push appends v unless an item with the same key was pushed before.
// It reports whether v was added.
func (q *Queue[T, K]) Push(v T) bool {
	k := q.key(v)
	if _, ok := q.seen[k]; ok {
		return false
	}
	q.seen[k] = struct{}{}

	q.data.PushBack(v)
	return true
}

func (q *Queue[T, K]) Pop() T {
	e := q.data.Front()
	if e == nil {
		var zero T
		return zero
	}

	q.data.Remove(e)
	return e.Value.(T)
}

func (q *Queue[T, K]) Len() int {
	return q.data.Len()
}

// Iter pops items until the queue is empty. Items pushed while iterating
// are visited too.
func (q *Queue[T, K]) Iter(yield func(T) bool) {
	for e := q.data.Front(); e != nil; e = q.data.Front() {
		q.data.Remove(e)

		if !yield(e.Value.(T)) {
			break
		}
	}
}
