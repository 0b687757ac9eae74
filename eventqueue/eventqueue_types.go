package eventqueue

import (
	"github.com/marketmill/backtest/common"
)

// Queue holds pending events ordered by timestamp, with the arrival sequence
// assigned on push breaking ties. Two events stamped at the same time always
// leave in the order they entered
type Queue struct {
	heap eventHeap
	seq  int64
}

type entry struct {
	event common.Event
	seq   int64
}

type eventHeap []entry
