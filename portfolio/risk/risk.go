package risk

import (
	"fmt"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/portfolio/holdings"
	"github.com/shopspring/decimal"
)

// Validate checks the limits are usable
func (r *Risk) Validate() error {
	if r.MaxPositionSize < 0 {
		return fmt.Errorf("%w, received %v", errNegativePositionLimit, r.MaxPositionSize)
	}
	if r.MaxExposure.IsNegative() {
		return fmt.Errorf("%w, received %v", errNegativeExposure, r.MaxExposure)
	}
	if r.MaxConcentration.IsNegative() {
		return fmt.Errorf("%w, received %v", errNegativeConcentration, r.MaxConcentration)
	}
	return nil
}

// EvaluateOrder decides whether the book can take the order. Limits are
// applied to the position as it would stand after the order fills at the
// reference price
func (r *Risk) EvaluateOrder(o order.Event, h *holdings.Holding, price decimal.Decimal) error {
	if o == nil || h == nil {
		return common.ErrNilArguments
	}
	resulting := h.QuantityOf(o.GetSymbol()) + o.GetDirection().Sign()*o.GetAmount()
	if r.MaxPositionSize > 0 && abs64(resulting) > r.MaxPositionSize {
		return fmt.Errorf("%w: %v units against a limit of %v",
			errExceedsPositionLimit, resulting, r.MaxPositionSize)
	}

	equity := h.Equity()
	if !equity.IsPositive() {
		return nil
	}
	notional := price.Mul(decimal.NewFromInt(abs64(resulting)))
	if r.MaxConcentration.IsPositive() {
		if limit := r.MaxConcentration.Mul(equity); notional.GreaterThan(limit) {
			return fmt.Errorf("%w: %v notional in %v against a limit of %v",
				errExceedsConcentration, notional, o.GetSymbol(), limit)
		}
	}
	if r.MaxExposure.IsPositive() {
		gross := notional
		for symbol, pos := range h.Positions {
			if symbol == o.GetSymbol() {
				continue
			}
			gross = gross.Add(pos.LastPrice.Mul(decimal.NewFromInt(abs64(pos.Quantity))))
		}
		if limit := r.MaxExposure.Mul(equity); gross.GreaterThan(limit) {
			return fmt.Errorf("%w: %v gross against a limit of %v",
				errExceedsExposure, gross, limit)
		}
	}
	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
