package portfolio

import (
	"errors"

	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/portfolio/holdings"
	"github.com/shopspring/decimal"
)

var (
	errSizeManagerUnset = errors.New("size manager unset")
	errRiskManagerUnset = errors.New("risk manager unset")
	errInvalidDirection = errors.New("invalid signal direction")
)

// Portfolio turns signals into orders and keeps the account current as fills
// come back. It never talks to the exchange directly, orders and fills both
// travel through the event queue
type Portfolio struct {
	sizeManager SizeHandler
	riskManager RiskHandler
	holding     *holdings.Holding
}

// SizeHandler decides how many units an order raised from a signal carries,
// given the signed quantity already held in the symbol
type SizeHandler interface {
	SizeOrder(signal.Event, int64) (int64, error)
}

// RiskHandler vets an order against the account before it is sent for
// execution
type RiskHandler interface {
	EvaluateOrder(order.Event, *holdings.Holding, decimal.Decimal) error
}
