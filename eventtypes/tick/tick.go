package tick

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GetBid returns the bid price
func (t *Tick) GetBid() decimal.Decimal {
	return t.Bid
}

// GetAsk returns the ask price
func (t *Tick) GetAsk() decimal.Decimal {
	return t.Ask
}

// GetLast returns the last traded price
func (t *Tick) GetLast() decimal.Decimal {
	return t.Last
}

// GetVolume returns the volume traded at the last price
func (t *Tick) GetVolume() decimal.Decimal {
	return t.Volume
}

// Validate checks that a tick is usable before it enters the queue. A crossed
// or negative quote is not recoverable and fails the run
func (t *Tick) Validate() error {
	if t.Base == nil || t.Time.IsZero() {
		return errNoTime
	}
	if t.Symbol == "" {
		return errNoSymbol
	}
	if t.Bid.IsNegative() || t.Ask.IsNegative() || t.Last.IsNegative() || t.Volume.IsNegative() {
		return fmt.Errorf("%w: bid %v ask %v last %v volume %v at %v",
			errNegativePrice, t.Bid, t.Ask, t.Last, t.Volume, t.Time)
	}
	if t.Bid.IsPositive() && t.Ask.IsPositive() && t.Bid.GreaterThan(t.Ask) {
		return fmt.Errorf("%w: bid %v ask %v at %v", errCrossedQuote, t.Bid, t.Ask, t.Time)
	}
	return nil
}
