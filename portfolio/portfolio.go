package portfolio

import (
	"fmt"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/portfolio/holdings"
	"github.com/shopspring/decimal"
)

// Setup creates a portfolio with the size and risk managers it consults
// before raising orders
func Setup(sh SizeHandler, rh RiskHandler, initialFunds decimal.Decimal) (*Portfolio, error) {
	if sh == nil {
		return nil, errSizeManagerUnset
	}
	if rh == nil {
		return nil, errRiskManagerUnset
	}
	h, err := holdings.Create(initialFunds)
	if err != nil {
		return nil, err
	}
	return &Portfolio{
		sizeManager: sh,
		riskManager: rh,
		holding:     h,
	}, nil
}

// OnSignal sizes and vets a signal into an order. A nil order with a nil
// error means the signal was deliberately not acted on and the reason has
// been appended to it
func (p *Portfolio) OnSignal(s signal.Event, latest tick.Event) (*order.Order, error) {
	if s == nil || latest == nil {
		return nil, common.ErrNilArguments
	}
	held := p.holding.QuantityOf(s.GetSymbol())
	var side common.Side
	switch s.GetDirection() {
	case signal.Long:
		side = common.Buy
	case signal.Short:
		side = common.Sell
	case signal.Exit:
		if held == 0 {
			s.AppendReason("no position held, exit signal not acted on")
			return nil, nil
		}
		if held > 0 {
			side = common.Sell
		} else {
			side = common.Buy
		}
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidDirection, s.GetDirection())
	}

	amount, err := p.sizeManager.SizeOrder(s, held)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		s.AppendReason("sized to zero units, no order raised")
		return nil, nil
	}

	o := &order.Order{
		Base: &event.Base{
			Symbol: s.GetSymbol(),
			Time:   s.GetTime(),
		},
		Direction:  side,
		OrderType:  orderTypeFor(s),
		Status:     order.New,
		Amount:     amount,
		LimitPrice: s.GetLimit(),
		StopPrice:  s.GetStop(),
	}
	if err = o.Validate(); err != nil {
		return nil, err
	}
	if err = p.riskManager.EvaluateOrder(o, p.holding, latest.GetLast()); err != nil {
		s.AppendReasonf("order rejected: %v", err)
		return nil, nil
	}
	o.AppendReasonf("%v signal at %v sized to %v units", s.GetDirection(), s.GetPrice(), amount)
	return o, nil
}

// orderTypeFor maps the signal's optional price constraints onto an order
// type. Both set makes a stop limit, neither a market order
func orderTypeFor(s signal.Event) order.Type {
	switch {
	case s.GetLimit().IsPositive() && s.GetStop().IsPositive():
		return order.StopLimit
	case s.GetLimit().IsPositive():
		return order.Limit
	case s.GetStop().IsPositive():
		return order.Stop
	}
	return order.Market
}

// OnFill applies an executed trade to the account and returns the realised
// PNL it produced
func (p *Portfolio) OnFill(f fill.Event) (decimal.Decimal, error) {
	if f == nil {
		return decimal.Zero, common.ErrNilEvent
	}
	return p.holding.Update(f)
}

// UpdateHoldings marks the account against the latest market data and
// returns the resulting equity snapshot
func (p *Portfolio) UpdateHoldings(t tick.Event) (holdings.EquitySnapshot, error) {
	if t == nil {
		return holdings.EquitySnapshot{}, common.ErrNilEvent
	}
	p.holding.Mark(t)
	return p.holding.Snapshot(), nil
}

// GetHolding returns the live account state
func (p *Portfolio) GetHolding() *holdings.Holding {
	return p.holding
}
