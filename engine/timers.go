package engine

import (
	"container/heap"
	"time"
)

// Timers holds one-shot deferred callbacks fired from the frame loop
// Callbacks cannot be cancelled; they must check that what they touch still exists
type Timers struct {
	q   timerQueue
	seq uint64
}

type timer struct {
	due time.Time
	seq uint64
	fn  func()
}

// timerQueue orders by due time, then by insertion
type timerQueue []timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x any)   { *q = append(*q, x.(timer)) }
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = timer{}
	*q = old[:n-1]
	return t
}

// At schedules fn to run on the first Fire at or after due
func (t *Timers) At(due time.Time, fn func()) {
	if fn == nil {
		return
	}
	t.seq++
	heap.Push(&t.q, timer{due: due, seq: t.seq, fn: fn})
}

// Fire runs every callback due at now and returns how many ran
// Callbacks scheduled while firing wait for the next call
func (t *Timers) Fire(now time.Time) int {
	var due []func()
	for t.q.Len() > 0 && !t.q[0].due.After(now) {
		due = append(due, heap.Pop(&t.q).(timer).fn)
	}
	for _, fn := range due {
		fn()
	}
	return len(due)
}

// Len returns the number of pending callbacks
func (t *Timers) Len() int {
	return t.q.Len()
}
