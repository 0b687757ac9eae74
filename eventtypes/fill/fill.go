package fill

import (
	"github.com/marketmill/backtest/common"
	"github.com/shopspring/decimal"
)

// SetDirection sets the side of the fill
func (f *Fill) SetDirection(s common.Side) {
	f.Direction = s
}

// GetDirection returns the side of the fill
func (f *Fill) GetDirection() common.Side {
	return f.Direction
}

// GetAmount returns the number of units filled
func (f *Fill) GetAmount() int64 {
	return f.Amount
}

// GetPrice returns the execution price
func (f *Fill) GetPrice() decimal.Decimal {
	return f.Price
}

// GetCommission returns the commission charged on the fill
func (f *Fill) GetCommission() decimal.Decimal {
	return f.Commission
}

// GetExchange returns the exchange the fill occurred on
func (f *Fill) GetExchange() string {
	return f.Exchange
}

// GetOrderID returns the ID of the order that produced the fill
func (f *Fill) GetOrderID() string {
	return f.OrderID
}

// Cost returns the signed cash impact of the fill. Buys consume cash, sells
// release it and commission is always a charge
func (f *Fill) Cost() decimal.Decimal {
	notional := f.Price.Mul(decimal.NewFromInt(f.Amount))
	return notional.Mul(decimal.NewFromInt(f.Direction.Sign())).Add(f.Commission)
}
