package order

import (
	"errors"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/shopspring/decimal"
)

var (
	errInvalidAmount      = errors.New("order amount must be a positive whole number of units")
	errInvalidOrderType   = errors.New("order type unset or unrecognised")
	errLimitPriceRequired = errors.New("order type requires a positive limit price")
	errStopPriceRequired  = errors.New("order type requires a positive stop price")
)

// Type describes how an order executes against the book
type Type string

// Order types the simulated exchange understands
const (
	Market    Type = "MKT"
	Limit     Type = "LMT"
	Stop      Type = "STP"
	StopLimit Type = "STP_LMT"
)

// Status tracks an order through its lifecycle
type Status string

// Order statuses
const (
	New      Status = "NEW"
	Open     Status = "OPEN"
	Filled   Status = "FILLED"
	Rejected Status = "REJECTED"
)

// Order is the portfolio's request for the exchange to trade. Amount is
// always positive, the direction carries the side
type Order struct {
	*event.Base
	ID         string          `json:"id"`
	Direction  common.Side     `json:"direction"`
	OrderType  Type            `json:"order-type"`
	Status     Status          `json:"status"`
	Amount     int64           `json:"amount"`
	LimitPrice decimal.Decimal `json:"limit-price,omitempty"`
	StopPrice  decimal.Decimal `json:"stop-price,omitempty"`
}

// Event interface for an order on top of the base event
type Event interface {
	common.Event
	common.Directioner
	GetID() string
	SetID(string)
	GetType() Type
	GetStatus() Status
	SetStatus(Status)
	GetAmount() int64
	GetLimitPrice() decimal.Decimal
	GetStopPrice() decimal.Decimal
}
