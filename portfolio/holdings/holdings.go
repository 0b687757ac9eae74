package holdings

import (
	"fmt"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/shopspring/decimal"
)

// Create sets up a holding funded with the starting cash
func Create(initialFunds decimal.Decimal) (*Holding, error) {
	if !initialFunds.IsPositive() {
		return nil, fmt.Errorf("%w, received %v", errInitialFundsNotPositive, initialFunds)
	}
	return &Holding{
		InitialFunds:   initialFunds,
		RemainingFunds: initialFunds,
		Positions:      make(map[string]*Position),
	}, nil
}

// Update applies a fill to the book and returns the realised PNL it produced.
// Cash always moves by exactly the fill cost
func (h *Holding) Update(f fill.Event) (decimal.Decimal, error) {
	if f == nil {
		return decimal.Zero, common.ErrNilEvent
	}
	if err := f.GetDirection().Validate(); err != nil {
		return decimal.Zero, err
	}
	if f.GetAmount() <= 0 {
		return decimal.Zero, fmt.Errorf("%w, received %v", errInvalidFillAmount, f.GetAmount())
	}
	pos, ok := h.Positions[f.GetSymbol()]
	if !ok {
		pos = &Position{Symbol: f.GetSymbol()}
		h.Positions[f.GetSymbol()] = pos
	}
	realised := pos.apply(f.GetDirection().Sign()*f.GetAmount(), f.GetPrice())
	h.RemainingFunds = h.RemainingFunds.Sub(f.Cost())
	h.TotalFees = h.TotalFees.Add(f.GetCommission())
	h.Offset = f.GetOffset()
	h.Timestamp = f.GetTime()
	return realised, nil
}

// apply nets the signed delta into the position. Adding to a side reweights
// the average cost, reducing realises PNL against it and going through flat
// opens the remainder at the fill price
func (p *Position) apply(delta int64, price decimal.Decimal) decimal.Decimal {
	var realised decimal.Decimal
	if p.Quantity == 0 || sign64(p.Quantity) == sign64(delta) {
		existing := decimal.NewFromInt(abs64(p.Quantity))
		added := decimal.NewFromInt(abs64(delta))
		p.AverageCost = p.AverageCost.Mul(existing).
			Add(price.Mul(added)).
			Div(existing.Add(added))
		p.Quantity += delta
	} else {
		closed := abs64(delta)
		if held := abs64(p.Quantity); closed > held {
			closed = held
		}
		realised = price.Sub(p.AverageCost).
			Mul(decimal.NewFromInt(closed)).
			Mul(decimal.NewFromInt(sign64(p.Quantity)))
		p.RealisedPNL = p.RealisedPNL.Add(realised)
		remaining := p.Quantity + delta
		switch {
		case remaining == 0:
			p.AverageCost = decimal.Zero
		case sign64(remaining) != sign64(p.Quantity):
			p.AverageCost = price
		}
		p.Quantity = remaining
	}
	p.LastPrice = price
	p.markUnrealised()
	return realised
}

// Mark revalues the symbol's position against the latest market data
func (h *Holding) Mark(t tick.Event) {
	h.Offset = t.GetOffset()
	h.Timestamp = t.GetTime()
	pos, ok := h.Positions[t.GetSymbol()]
	if !ok {
		return
	}
	pos.LastPrice = t.GetLast()
	pos.markUnrealised()
}

func (p *Position) markUnrealised() {
	if p.Quantity == 0 {
		p.UnrealisedPNL = decimal.Zero
		return
	}
	p.UnrealisedPNL = p.LastPrice.Sub(p.AverageCost).
		Mul(decimal.NewFromInt(p.Quantity))
}

// Equity returns cash plus every position marked at its last price
func (h *Holding) Equity() decimal.Decimal {
	equity := h.RemainingFunds
	for _, pos := range h.Positions {
		equity = equity.Add(pos.LastPrice.Mul(decimal.NewFromInt(pos.Quantity)))
	}
	return equity
}

// Snapshot captures the account marked to market at the holding's current
// offset
func (h *Holding) Snapshot() EquitySnapshot {
	return EquitySnapshot{
		Offset:    h.Offset,
		Timestamp: h.Timestamp,
		Cash:      h.RemainingFunds,
		Equity:    h.Equity(),
	}
}

// QuantityOf returns the signed units held in a symbol, zero when the symbol
// has never traded
func (h *Holding) QuantityOf(symbol string) int64 {
	if pos, ok := h.Positions[symbol]; ok {
		return pos.Quantity
	}
	return 0
}

// PositionFor returns a copy of the symbol's position
func (h *Holding) PositionFor(symbol string) (Position, bool) {
	if pos, ok := h.Positions[symbol]; ok {
		return *pos, true
	}
	return Position{}, false
}

// RealisedTotal sums realised PNL across all positions
func (h *Holding) RealisedTotal() decimal.Decimal {
	var total decimal.Decimal
	for _, pos := range h.Positions {
		total = total.Add(pos.RealisedPNL)
	}
	return total
}

// UnrealisedTotal sums unrealised PNL across all positions
func (h *Holding) UnrealisedTotal() decimal.Decimal {
	var total decimal.Decimal
	for _, pos := range h.Positions {
		total = total.Add(pos.UnrealisedPNL)
	}
	return total
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign64(v int64) int64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
