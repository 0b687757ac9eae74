package tick

import (
	"errors"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/shopspring/decimal"
)

var (
	errNegativePrice = errors.New("tick contains a negative price")
	errCrossedQuote  = errors.New("tick bid exceeds ask")
	errNoTime        = errors.New("tick has no timestamp")
	errNoSymbol      = errors.New("tick has no symbol")
)

// Tick is the market data event that drives a run. Bid and ask quote the
// current book, last is the most recent traded price and volume the amount
// traded at it
type Tick struct {
	*event.Base
	Bid    decimal.Decimal `json:"bid"`
	Ask    decimal.Decimal `json:"ask"`
	Last   decimal.Decimal `json:"last"`
	Volume decimal.Decimal `json:"volume"`
}

// Event interface for a tick on top of the base event
type Event interface {
	common.Event
	GetBid() decimal.Decimal
	GetAsk() decimal.Decimal
	GetLast() decimal.Decimal
	GetVolume() decimal.Decimal
}
