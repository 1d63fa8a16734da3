// Implements Queue, the ordered FIFO used for every process collection in the
// Engine and for each process's pending I/O bursts.

package sim

import (
	"fmt"
	"strings"
)

// Queue is a FIFO with peek-front, removal at an arbitrary position, and a
// stable bulk removal. Relative order of the remaining elements is never
// disturbed. The zero value is an empty queue ready for use.
type Queue[T any] struct {
	items []T
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: make([]T, 0)}
}

// Enqueue adds v to the tail of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.items = append(q.items, v)
}

// Peek returns the head of the queue without removing it.
// The boolean is false if the queue is empty.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Dequeue removes and returns the head of the queue.
// The boolean is false if the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// DequeueAt removes and returns the i-th element (0 = head).
// Rank-based selection uses it to pull a non-head winner out of the ready queue.
// Panics if i is out of range.
func (q *Queue[T]) DequeueAt(i int) T {
	if i < 0 || i >= len(q.items) {
		panic(fmt.Sprintf("DequeueAt: index %d out of range [0, %d)", i, len(q.items)))
	}
	v := q.items[i]
	n := len(q.items)
	copy(q.items[i:], q.items[i+1:])
	var zero T
	q.items[n-1] = zero
	q.items = q.items[:n-1]
	return v
}

// RemoveIf removes every element for which pred returns true, in a single pass,
// and returns them in their original relative order. Kept elements also keep
// their relative order.
func (q *Queue[T]) RemoveIf(pred func(T) bool) []T {
	if pred == nil {
		panic("RemoveIf: pred must not be nil")
	}
	var removed []T
	kept := q.items[:0]
	for _, v := range q.items {
		if pred(v) {
			removed = append(removed, v)
		} else {
			kept = append(kept, v)
		}
	}
	var zero T
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = zero
	}
	q.items = kept
	return removed
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Items returns the queue contents in FIFO order.
// The returned slice is the queue's internal storage: callers may iterate over
// it and mutate the elements it points to, but MUST NOT append to or reslice it.
func (q *Queue[T]) Items() []T {
	return q.items
}

func (q *Queue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range q.items {
		sb.WriteString(fmt.Sprint(v))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
