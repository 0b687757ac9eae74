package exchange

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/exchange/slippage"
	"github.com/shopspring/decimal"
)

// Setup creates an exchange. Commission is charged as rate times notional
// with a per trade floor
func Setup(model slippage.Model, commissionRate, minimumCommission decimal.Decimal) (*Exchange, error) {
	if model == nil {
		return nil, errModelUnset
	}
	if commissionRate.IsNegative() {
		return nil, fmt.Errorf("%w, received %v", errNegativeCommission, commissionRate)
	}
	if minimumCommission.IsNegative() {
		return nil, fmt.Errorf("%w, received %v", errNegativeMinimum, minimumCommission)
	}
	return &Exchange{
		slippage:          model,
		commissionRate:    commissionRate,
		minimumCommission: minimumCommission,
	}, nil
}

// ExecuteOrder attempts the order against the latest tick. Orders that
// cannot execute yet rest in the book and return a nil fill with a nil error
func (e *Exchange) ExecuteOrder(o order.Event, latest tick.Event) (*fill.Fill, error) {
	if o == nil || latest == nil {
		return nil, common.ErrNilArguments
	}
	if v, ok := o.(*order.Order); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if o.GetID() == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		o.SetID(id.String())
	}
	ro := &restingOrder{order: o}
	f, err := e.evaluate(ro, latest)
	if err != nil {
		return nil, err
	}
	if f != nil {
		return f, nil
	}
	o.SetStatus(order.Open)
	o.AppendReasonf("%v resting in the order book", o.GetType())
	e.pending = append(e.pending, ro)
	return nil, nil
}

// ProcessTick re-evaluates the resting book against a fresh tick, returning
// any fills in the order the orders originally arrived
func (e *Exchange) ProcessTick(t tick.Event) ([]*fill.Fill, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	var fills []*fill.Fill
	remaining := e.pending[:0]
	for _, ro := range e.pending {
		f, err := e.evaluate(ro, t)
		if err != nil {
			return nil, err
		}
		if f != nil {
			fills = append(fills, f)
			continue
		}
		remaining = append(remaining, ro)
	}
	e.pending = remaining
	return fills, nil
}

// Pending returns the orders still resting in the book, used to report
// unfilled orders when a run ends
func (e *Exchange) Pending() []order.Event {
	pending := make([]order.Event, len(e.pending))
	for i := range e.pending {
		pending[i] = e.pending[i].order
	}
	return pending
}

// Reset empties the resting book
func (e *Exchange) Reset() {
	e.pending = nil
}

// evaluate decides whether an order can execute against the tick. Market
// orders always can, limit orders need the quote through their price and
// stops need the last trade through theirs
func (e *Exchange) evaluate(ro *restingOrder, t tick.Event) (*fill.Fill, error) {
	o := ro.order
	if o.GetSymbol() != t.GetSymbol() {
		return nil, nil
	}
	switch o.GetType() {
	case order.Market:
		return e.fillAtMarket(o, t)
	case order.Limit:
		if price, ok := limitFillPrice(o, t); ok {
			return e.fill(o, price, t), nil
		}
	case order.Stop:
		if stopTriggered(o, t) {
			return e.fillAtMarket(o, t)
		}
	case order.StopLimit:
		if !ro.triggered && stopTriggered(o, t) {
			ro.triggered = true
			o.AppendReasonf("stop leg triggered at %v", t.GetLast())
		}
		if ro.triggered {
			if price, ok := limitFillPrice(o, t); ok {
				return e.fill(o, price, t), nil
			}
		}
	}
	return nil, nil
}

// fillAtMarket executes immediately at the far side of the book worsened by
// slippage
func (e *Exchange) fillAtMarket(o order.Event, t tick.Event) (*fill.Fill, error) {
	quote, err := quoteFor(o.GetDirection(), t)
	if err != nil {
		return nil, fmt.Errorf("%w for order %v at %v", err, o.GetID(), t.GetTime())
	}
	price := e.slippage.Adjust(o.GetDirection(), quote, o.GetAmount(), t.GetVolume())
	return e.fill(o, price, t), nil
}

// quoteFor returns the side of the book a taker order crosses, falling back
// to the last traded price when that side is empty
func quoteFor(side common.Side, t tick.Event) (decimal.Decimal, error) {
	quote := t.GetAsk()
	if side == common.Sell {
		quote = t.GetBid()
	}
	if !quote.IsPositive() {
		quote = t.GetLast()
	}
	if !quote.IsPositive() {
		return decimal.Zero, ErrNoQuote
	}
	return quote, nil
}

// limitFillPrice reports whether the quote has come through the limit and
// the price the fill takes. Limit fills take the quote, not the limit, so a
// gap through the price executes at the better level without slippage
func limitFillPrice(o order.Event, t tick.Event) (decimal.Decimal, bool) {
	if o.GetDirection() == common.Buy {
		if t.GetAsk().IsPositive() && t.GetAsk().LessThanOrEqual(o.GetLimitPrice()) {
			return t.GetAsk(), true
		}
		return decimal.Zero, false
	}
	if t.GetBid().IsPositive() && t.GetBid().GreaterThanOrEqual(o.GetLimitPrice()) {
		return t.GetBid(), true
	}
	return decimal.Zero, false
}

// stopTriggered reports whether the last trade has gone through the stop,
// upwards for buy stops and downwards for sell stops. A tick with no traded
// price cannot trigger a stop
func stopTriggered(o order.Event, t tick.Event) bool {
	last := t.GetLast()
	if !last.IsPositive() {
		return false
	}
	if o.GetDirection() == common.Buy {
		return last.GreaterThanOrEqual(o.GetStopPrice())
	}
	return last.LessThanOrEqual(o.GetStopPrice())
}

func (e *Exchange) fill(o order.Event, price decimal.Decimal, t tick.Event) *fill.Fill {
	o.SetStatus(order.Filled)
	f := &fill.Fill{
		Base: &event.Base{
			Symbol: o.GetSymbol(),
			Time:   t.GetTime(),
		},
		Direction:  o.GetDirection(),
		Amount:     o.GetAmount(),
		Price:      price,
		Commission: e.commission(price, o.GetAmount()),
		Exchange:   Name,
		OrderID:    o.GetID(),
	}
	f.AppendReasonf("%v %v units at %v", o.GetDirection(), o.GetAmount(), price)
	return f
}

func (e *Exchange) commission(price decimal.Decimal, amount int64) decimal.Decimal {
	c := e.commissionRate.Mul(price).Mul(decimal.NewFromInt(amount))
	if c.LessThan(e.minimumCommission) {
		return e.minimumCommission
	}
	return c
}
