package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func processIDs(ps []*Process) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func queueOf(ids ...string) *Queue[*Process] {
	q := NewQueue[*Process]()
	for _, id := range ids {
		q.Enqueue(&Process{ID: id})
	}
	return q
}

func TestQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with processes [A, B]
	q := queueOf("A", "B")

	// WHEN Peek() is called
	got, ok := q.Peek()

	// THEN it returns the front element without removing it
	if !ok || got.ID != "A" {
		t.Errorf("Peek: got %v (ok=%v), want A", got, ok)
	}
	if q.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", q.Len())
	}
}

func TestQueue_Peek_Empty_ReturnsFalse(t *testing.T) {
	// GIVEN an empty queue
	q := NewQueue[*Process]()

	// WHEN Peek() is called
	got, ok := q.Peek()

	// THEN it reports absence
	if ok || got != nil {
		t.Errorf("Peek on empty queue: got (%v, %v), want (nil, false)", got, ok)
	}
}

func TestQueue_Dequeue_IsFIFO(t *testing.T) {
	// GIVEN a queue with [A, B, C]
	q := queueOf("A", "B", "C")

	// WHEN every element is dequeued
	var got []string
	for q.Len() > 0 {
		p, ok := q.Dequeue()
		assert.True(t, ok)
		got = append(got, p.ID)
	}

	// THEN they come out in enqueue order and a further Dequeue reports empty
	assert.Equal(t, []string{"A", "B", "C"}, got)
	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestQueue_ZeroValue_IsUsable(t *testing.T) {
	var q Queue[int]
	q.Enqueue(7)
	v, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DequeueAt_PreservesRemainingOrder(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		wantID   string
		wantRest []string
	}{
		{"head", 0, "A", []string{"B", "C", "D"}},
		{"middle", 2, "C", []string{"A", "B", "D"}},
		{"tail", 3, "D", []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a queue with [A, B, C, D]
			q := queueOf("A", "B", "C", "D")

			// WHEN DequeueAt(index) is called
			got := q.DequeueAt(tt.index)

			// THEN the selected element is returned and the rest keep their order
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantRest, processIDs(q.Items()))
		})
	}
}

func TestQueue_DequeueAt_OutOfRange_Panics(t *testing.T) {
	q := queueOf("A")
	assert.Panics(t, func() { q.DequeueAt(1) })
	assert.Panics(t, func() { q.DequeueAt(-1) })
	assert.Panics(t, func() { NewQueue[*Process]().DequeueAt(0) })
}

func TestQueue_RemoveIf_StableForRemovedAndKept(t *testing.T) {
	// GIVEN a queue with [A, B, C, D, E]
	q := queueOf("A", "B", "C", "D", "E")
	drop := map[string]bool{"B": true, "C": true, "E": true}

	// WHEN several non-adjacent elements are removed in one pass
	removed := q.RemoveIf(func(p *Process) bool { return drop[p.ID] })

	// THEN removed elements come back in queue order and the rest are untouched
	assert.Equal(t, []string{"B", "C", "E"}, processIDs(removed))
	assert.Equal(t, []string{"A", "D"}, processIDs(q.Items()))
}

func TestQueue_RemoveIf_NoMatch_LeavesQueueIntact(t *testing.T) {
	q := queueOf("A", "B")
	removed := q.RemoveIf(func(*Process) bool { return false })
	assert.Empty(t, removed)
	assert.Equal(t, []string{"A", "B"}, processIDs(q.Items()))
}

func TestQueue_RemoveIf_NilPredicate_Panics(t *testing.T) {
	assert.Panics(t, func() { queueOf("A").RemoveIf(nil) })
}

func TestQueue_EnqueueAfterRemoval_AppendsAtTail(t *testing.T) {
	// GIVEN a queue that has had elements removed from the middle
	q := queueOf("A", "B", "C")
	q.DequeueAt(1)
	q.RemoveIf(func(p *Process) bool { return p.ID == "A" })

	// WHEN a new element is enqueued
	q.Enqueue(&Process{ID: "D"})

	// THEN it lands at the tail
	assert.Equal(t, []string{"C", "D"}, processIDs(q.Items()))
}

func TestQueue_String(t *testing.T) {
	q := NewQueue[int]()
	assert.Equal(t, "[]", q.String())
	q.Enqueue(1)
	q.Enqueue(2)
	assert.Equal(t, "[1 2]", q.String())
}
