package exchange

import (
	"errors"

	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/exchange/slippage"
	"github.com/shopspring/decimal"
)

// Name identifies fills produced by the simulated exchange
const Name = "SIMULATED"

var (
	errModelUnset         = errors.New("slippage model unset")
	errNegativeCommission = errors.New("commission rate cannot be negative")
	errNegativeMinimum    = errors.New("minimum commission cannot be negative")
	// ErrNoQuote is returned when a marketable order meets a tick carrying no
	// usable price on the side it needs
	ErrNoQuote = errors.New("no price available to execute against")
)

// Exchange simulates execution against the replayed market. Orders that
// cannot execute on arrival rest in a book that is re-evaluated against
// every tick in the order they arrived
type Exchange struct {
	slippage          slippage.Model
	commissionRate    decimal.Decimal
	minimumCommission decimal.Decimal
	pending           []*restingOrder
}

// restingOrder wraps an order waiting in the book. triggered records that a
// stop limit's stop leg has fired and the order now works as a limit
type restingOrder struct {
	order     order.Event
	triggered bool
}
