package strategies

import (
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/strategies/base"
)

// Handler defines all functions required to run strategies against data
type Handler interface {
	Name() string
	Description() string
	OnTick(tick.Event) (signal.Event, error)
	OnFill(fill.Event)
	State() base.State
	SetCustomSettings(map[string]any) error
	SetDefaults()
}
