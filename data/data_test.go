package data

import (
	"testing"
	"time"

	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tickAt(t time.Time, last float64) *tick.Tick {
	return &tick.Tick{
		Base:   &event.Base{Symbol: "AAPL", Time: t},
		Bid:    decimal.NewFromFloat(last),
		Ask:    decimal.NewFromFloat(last),
		Last:   decimal.NewFromFloat(last),
		Volume: decimal.NewFromInt(1),
	}
}

func TestNewSeries(t *testing.T) {
	t.Parallel()
	_, err := NewSeries(nil)
	assert.ErrorIs(t, err, errNoData)

	tt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = NewSeries([]*tick.Tick{tickAt(tt.Add(time.Minute), 10), tickAt(tt, 10)})
	assert.ErrorIs(t, err, errOutOfOrder)

	// equal timestamps are permitted, only decreases are rejected
	s, err := NewSeries([]*tick.Tick{tickAt(tt, 10), tickAt(tt, 10.5)})
	assert.NoError(t, err)
	if s == nil {
		t.Fatal("expected series")
	}
}

func TestSeriesIteration(t *testing.T) {
	t.Parallel()
	tt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewSeries([]*tick.Tick{
		tickAt(tt, 10),
		tickAt(tt.Add(time.Minute), 10.5),
	})
	assert.NoError(t, err)

	if !s.HasNext() {
		t.Error("expected true")
	}
	k, err := s.Next()
	assert.NoError(t, err)
	if !k.Last.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected '%v' received '%v'", 10, k.Last)
	}
	k, err = s.Next()
	assert.NoError(t, err)
	if !k.Last.Equal(decimal.NewFromFloat(10.5)) {
		t.Errorf("expected '%v' received '%v'", 10.5, k.Last)
	}
	if s.HasNext() {
		t.Error("expected false")
	}
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrNoMoreData)

	s.Reset()
	if !s.HasNext() {
		t.Error("expected true")
	}
}
