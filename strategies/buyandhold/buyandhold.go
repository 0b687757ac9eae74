package buyandhold

import (
	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/strategies/base"
	"github.com/shopspring/decimal"
)

const (
	// Name is the strategy name
	Name        = "buyandhold"
	description = `Buys at full strength on the first tick and holds for the remainder of the run`
)

// Strategy buys once and holds
type Strategy struct {
	base.Strategy
	signalled bool
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// OnTick raises a full strength long on the first tick and stays quiet after
func (s *Strategy) OnTick(t tick.Event) (signal.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	if s.signalled {
		return nil, nil
	}
	s.signalled = true
	return s.CreateSignal(t, signal.Long, decimal.NewFromInt(1))
}

// State reports whether the opening long has been raised yet
func (s *Strategy) State() base.State {
	return base.State{
		Name:    Name,
		Details: map[string]any{"signalled": s.signalled},
	}
}

// SetCustomSettings will return an error as the strategy does not support
// any
func (s *Strategy) SetCustomSettings(settings map[string]any) error {
	if len(settings) > 0 {
		return base.ErrCustomSettingsUnsupported
	}
	return nil
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.signalled = false
}
