package slippage

import (
	"github.com/marketmill/backtest/common"
	"github.com/shopspring/decimal"
)

// Adjust worsens the price by the flat rate, upwards for buys and downwards
// for sells
func (f *Fixed) Adjust(side common.Side, price decimal.Decimal, _ int64, _ decimal.Decimal) decimal.Decimal {
	return apply(side, price, f.Rate)
}

// Adjust worsens the price by the base rate plus the volume scaled impact.
// A tick with no volume falls back to the base rate alone
func (v *VolumeImpact) Adjust(side common.Side, price decimal.Decimal, amount int64, volume decimal.Decimal) decimal.Decimal {
	rate := v.Base
	if volume.IsPositive() {
		participation := decimal.NewFromInt(amount).Div(volume)
		rate = rate.Add(v.Impact.Mul(participation))
	}
	return apply(side, price, rate)
}

func apply(side common.Side, price, rate decimal.Decimal) decimal.Decimal {
	adjustment := price.Mul(rate)
	if side == common.Buy {
		return price.Add(adjustment)
	}
	return price.Sub(adjustment)
}
