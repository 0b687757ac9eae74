package slippage

import (
	"github.com/marketmill/backtest/common"
	"github.com/shopspring/decimal"
)

// Model worsens an execution price to account for the cost of crossing the
// book. Implementations must be deterministic so a run always reproduces
type Model interface {
	Adjust(side common.Side, price decimal.Decimal, amount int64, volume decimal.Decimal) decimal.Decimal
}

// Fixed applies a flat fractional rate, 0.001 worsens the price by ten
// basis points
type Fixed struct {
	Rate decimal.Decimal
}

// VolumeImpact grows slippage as the order size approaches the volume traded
// on the tick. The applied rate is Base plus Impact scaled by order amount
// over tick volume
type VolumeImpact struct {
	Base   decimal.Decimal
	Impact decimal.Decimal
}
