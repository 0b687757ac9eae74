package data

import (
	"fmt"

	"github.com/marketmill/backtest/eventtypes/tick"
)

// NewSeries validates the supplied ticks and returns a feed over them.
// Timestamps must not decrease
func NewSeries(ticks []*tick.Tick) (*Series, error) {
	if len(ticks) == 0 {
		return nil, errNoData
	}
	for i := range ticks {
		if err := ticks[i].Validate(); err != nil {
			return nil, fmt.Errorf("tick %v: %w", i, err)
		}
		if i > 0 && ticks[i].Time.Before(ticks[i-1].Time) {
			return nil, fmt.Errorf("%w: %v follows %v at index %v",
				errOutOfOrder, ticks[i].Time, ticks[i-1].Time, i)
		}
	}
	return &Series{ticks: ticks}, nil
}

// HasNext reports whether another tick remains in the series
func (s *Series) HasNext() bool {
	return s.offset < len(s.ticks)
}

// Next returns the next tick in the series
func (s *Series) Next() (*tick.Tick, error) {
	if s.offset >= len(s.ticks) {
		return nil, ErrNoMoreData
	}
	t := s.ticks[s.offset]
	s.offset++
	return t, nil
}

// Reset rewinds the series to the beginning so it can drive another run
func (s *Series) Reset() {
	s.offset = 0
}
