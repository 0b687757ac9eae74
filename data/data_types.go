package data

import (
	"errors"

	"github.com/marketmill/backtest/eventtypes/tick"
)

var (
	// ErrNoMoreData is returned by Next once a feed is exhausted
	ErrNoMoreData = errors.New("no more data to process")
	errNoData     = errors.New("series contains no data")
	errOutOfOrder = errors.New("series timestamps decrease")
)

// Feed supplies the stream of market events that drives a run. The engine
// pulls one tick at a time so feeds never need to hold the full stream in
// memory
type Feed interface {
	HasNext() bool
	Next() (*tick.Tick, error)
}

// Series is an in memory feed over a slice of ticks, mostly used for tests
// and programmatic runs
type Series struct {
	ticks  []*tick.Tick
	offset int
}
