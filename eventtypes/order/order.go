package order

import (
	"fmt"

	"github.com/marketmill/backtest/common"
	"github.com/shopspring/decimal"
)

// GetID returns the order ID
func (o *Order) GetID() string {
	return o.ID
}

// SetID sets the order ID
func (o *Order) SetID(id string) {
	o.ID = id
}

// SetDirection sets the side of the order
func (o *Order) SetDirection(s common.Side) {
	o.Direction = s
}

// GetDirection returns the side of the order
func (o *Order) GetDirection() common.Side {
	return o.Direction
}

// GetType returns the order type
func (o *Order) GetType() Type {
	return o.OrderType
}

// GetStatus returns order status
func (o *Order) GetStatus() Status {
	return o.Status
}

// SetStatus sets order status
func (o *Order) SetStatus(s Status) {
	o.Status = s
}

// GetAmount returns the amount of units in the order
func (o *Order) GetAmount() int64 {
	return o.Amount
}

// GetLimitPrice returns the limit price, zero when unset
func (o *Order) GetLimitPrice() decimal.Decimal {
	return o.LimitPrice
}

// GetStopPrice returns the stop price, zero when unset
func (o *Order) GetStopPrice() decimal.Decimal {
	return o.StopPrice
}

// Validate rejects malformed orders before they reach the exchange
func (o *Order) Validate() error {
	if err := o.Direction.Validate(); err != nil {
		return err
	}
	if o.Amount <= 0 {
		return fmt.Errorf("%w, received %v", errInvalidAmount, o.Amount)
	}
	switch o.OrderType {
	case Market:
	case Limit:
		if !o.LimitPrice.IsPositive() {
			return fmt.Errorf("%w: %v", errLimitPriceRequired, o.OrderType)
		}
	case Stop:
		if !o.StopPrice.IsPositive() {
			return fmt.Errorf("%w: %v", errStopPriceRequired, o.OrderType)
		}
	case StopLimit:
		if !o.LimitPrice.IsPositive() {
			return fmt.Errorf("%w: %v", errLimitPriceRequired, o.OrderType)
		}
		if !o.StopPrice.IsPositive() {
			return fmt.Errorf("%w: %v", errStopPriceRequired, o.OrderType)
		}
	default:
		return fmt.Errorf("%w: %q", errInvalidOrderType, o.OrderType)
	}
	return nil
}
