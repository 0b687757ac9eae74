package base

import (
	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/shopspring/decimal"
)

// SetLookback bounds the rolling price window, dropping anything already
// observed beyond it
func (s *Strategy) SetLookback(n int) {
	s.lookback = n
	if n > 0 && len(s.prices) > n {
		s.prices = s.prices[len(s.prices)-n:]
	}
}

// Lookback returns the window bound
func (s *Strategy) Lookback() int {
	return s.lookback
}

// Observe folds a traded price into the rolling window. Non positive prices
// cannot feed an indicator and are counted as bad data instead
func (s *Strategy) Observe(price decimal.Decimal) {
	if !price.IsPositive() {
		s.badData++
		return
	}
	s.prices = append(s.prices, price)
	if s.lookback > 0 && len(s.prices) > s.lookback {
		s.prices = s.prices[1:]
	}
}

// WindowFull reports whether enough prices have been observed to fill the
// lookback
func (s *Strategy) WindowFull() bool {
	return s.lookback > 0 && len(s.prices) >= s.lookback
}

// Prices returns the rolling window, oldest first
func (s *Strategy) Prices() []decimal.Decimal {
	return s.prices
}

// FloatPrices returns the rolling window as float64s for indicator libraries
func (s *Strategy) FloatPrices() []float64 {
	prices := make([]float64, len(s.prices))
	for i := range s.prices {
		prices[i] = s.prices[i].InexactFloat64()
	}
	return prices
}

// BadData returns how many unusable prices have been observed
func (s *Strategy) BadData() int64 {
	return s.badData
}

// OnFill is a no-op for strategies that do not track their fills
func (s *Strategy) OnFill(fill.Event) {}

// State returns an empty snapshot for strategies that expose no internals
func (s *Strategy) State() State {
	return State{}
}

// CreateSignal raises a validated signal off the back of a tick, carrying
// the tick's time and symbol
func (s *Strategy) CreateSignal(t tick.Event, direction signal.Direction, strength decimal.Decimal) (*signal.Signal, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	sig := &signal.Signal{
		Base: &event.Base{
			Symbol: t.GetSymbol(),
			Time:   t.GetTime(),
		},
		Direction: direction,
		Strength:  strength,
		Price:     t.GetLast(),
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}

// Reset clears the window and the bad data count
func (s *Strategy) Reset() {
	s.prices = nil
	s.badData = 0
}
