package eventqueue

import (
	"container/heap"

	"github.com/marketmill/backtest/common"
)

// Push adds an event to the queue and stamps it with its arrival sequence
func (q *Queue) Push(e common.Event) error {
	if e == nil {
		return common.ErrNilEvent
	}
	e.SetOffset(q.seq)
	heap.Push(&q.heap, entry{event: e, seq: q.seq})
	q.seq++
	return nil
}

// Pop removes and returns the next event in time order, false when empty
func (q *Queue) Pop() (common.Event, bool) {
	if q.heap.Len() == 0 {
		return nil, false
	}
	e, ok := heap.Pop(&q.heap).(entry)
	if !ok {
		return nil, false
	}
	return e.event, true
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	return q.heap.Len()
}

// Reset empties the queue and restarts the arrival sequence
func (q *Queue) Reset() {
	q.heap = q.heap[:0]
	q.seq = 0
}

func (h eventHeap) Len() int {
	return len(h)
}

func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].event.GetTime(), h[j].event.GetTime()
	if ti.Equal(tj) {
		return h[i].seq < h[j].seq
	}
	return ti.Before(tj)
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x any) {
	e, ok := x.(entry)
	if !ok {
		return
	}
	*h = append(*h, e)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
