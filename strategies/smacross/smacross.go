package smacross

import (
	"fmt"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/strategies/base"
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"
)

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick folds the latest price into the window and compares the fast and
// slow averages once it is full
func (s *Strategy) OnTick(t tick.Event) (signal.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	s.Observe(t.GetLast())
	if s.BadData() > int64(s.slowPeriod) {
		return nil, fmt.Errorf("%w: %v unusable prices", base.ErrTooMuchBadData, s.BadData())
	}
	if !s.WindowFull() {
		return nil, nil
	}

	prices := s.FloatPrices()
	fast := indicators.MA(prices, s.fastPeriod, indicators.Sma)
	slow := indicators.MA(prices, s.slowPeriod, indicators.Sma)
	if len(fast) == 0 || len(slow) == 0 {
		return nil, nil
	}
	latestFast := fast[len(fast)-1]
	latestSlow := slow[len(slow)-1]

	switch {
	case s.position == 0 && latestFast > latestSlow:
		return s.CreateSignal(t, signal.Long, decimal.NewFromInt(1))
	case s.position > 0 && latestFast < latestSlow:
		return s.CreateSignal(t, signal.Exit, decimal.NewFromInt(1))
	}
	return nil, nil
}

// OnFill keeps the strategy's view of its position current
func (s *Strategy) OnFill(f fill.Event) {
	if f == nil {
		return
	}
	s.position += f.GetDirection().Sign() * f.GetAmount()
}

// State reports the crossover periods and the position the strategy believes
// it holds
func (s *Strategy) State() base.State {
	return base.State{
		Name: Name,
		Details: map[string]any{
			"fast-period": s.fastPeriod,
			"slow-period": s.slowPeriod,
			"position":    s.position,
			"window-full": s.WindowFull(),
		},
	}
}

// SetCustomSettings parses the moving average periods
func (s *Strategy) SetCustomSettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case fastPeriodKey:
			fast, ok := v.(float64)
			if !ok || fast <= 0 {
				return fmt.Errorf("%w provided fast-period value could not be parsed: %v",
					base.ErrInvalidCustomSettings, v)
			}
			s.fastPeriod = int(fast)
		case slowPeriodKey:
			slow, ok := v.(float64)
			if !ok || slow <= 0 {
				return fmt.Errorf("%w provided slow-period value could not be parsed: %v",
					base.ErrInvalidCustomSettings, v)
			}
			s.slowPeriod = int(slow)
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v",
				base.ErrInvalidCustomSettings, k, v)
		}
	}
	if s.fastPeriod <= 0 || s.fastPeriod >= s.slowPeriod {
		return fmt.Errorf("%w, received fast %v slow %v",
			errBadPeriods, s.fastPeriod, s.slowPeriod)
	}
	s.SetLookback(s.slowPeriod)
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.fastPeriod = defaultFastPeriod
	s.slowPeriod = defaultSlowPeriod
	s.position = 0
	s.SetLookback(s.slowPeriod)
}
