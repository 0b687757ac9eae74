package fill

import (
	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/shopspring/decimal"
)

// Fill reports an executed trade back to the portfolio. Price is the final
// execution price after any slippage and commission is always positive
type Fill struct {
	*event.Base
	Direction  common.Side     `json:"direction"`
	Amount     int64           `json:"amount"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	Exchange   string          `json:"exchange"`
	OrderID    string          `json:"order-id"`
}

// Event interface for a fill on top of the base event
type Event interface {
	common.Event
	common.Directioner
	GetAmount() int64
	GetPrice() decimal.Decimal
	GetCommission() decimal.Decimal
	GetExchange() string
	GetOrderID() string
	Cost() decimal.Decimal
}
