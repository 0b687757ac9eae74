package signal

import (
	"errors"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/shopspring/decimal"
)

var (
	errInvalidDirection   = errors.New("signal direction unset or unrecognised")
	errStrengthOutOfRange = errors.New("signal strength must be between 0 and 1")
)

// Direction is the stance a strategy wants to hold on a symbol. Exit flattens
// whatever is currently held
type Direction string

// Directions a strategy can raise
const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
	Exit  Direction = "EXIT"
)

// Signal is raised by a strategy in response to market data. Strength scales
// the sizer's default order size. Limit and stop prices are optional and
// decide the resulting order type
type Signal struct {
	*event.Base
	Direction Direction       `json:"direction"`
	Strength  decimal.Decimal `json:"strength"`
	Price     decimal.Decimal `json:"price"`
	Limit     decimal.Decimal `json:"limit,omitempty"`
	Stop      decimal.Decimal `json:"stop,omitempty"`
}

// Event interface for a signal on top of the base event
type Event interface {
	common.Event
	GetDirection() Direction
	GetStrength() decimal.Decimal
	GetPrice() decimal.Decimal
	GetLimit() decimal.Decimal
	GetStop() decimal.Decimal
}
