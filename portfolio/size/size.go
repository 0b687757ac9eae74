package size

import (
	"fmt"

	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/shopspring/decimal"
)

// Validate checks the sizing rules are usable
func (s *Size) Validate() error {
	if s.DefaultSize <= 0 {
		return fmt.Errorf("%w, received %v", errNoDefaultSize, s.DefaultSize)
	}
	if s.MaxSize < 0 {
		return fmt.Errorf("%w, received %v", errNegativeMax, s.MaxSize)
	}
	return nil
}

// SizeOrder returns the unit count an order raised from the signal should
// carry. Exits size to the full held amount, entries scale the default size
// by the signal strength and a zero result means no order should be raised
func (s *Size) SizeOrder(sig signal.Event, held int64) (int64, error) {
	if sig == nil {
		return 0, errNilSignal
	}
	switch sig.GetDirection() {
	case signal.Exit:
		if held < 0 {
			return -held, nil
		}
		return held, nil
	case signal.Long, signal.Short:
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownStance, sig.GetDirection())
	}
	strength := sig.GetStrength()
	if strength.IsNegative() || strength.GreaterThan(decimal.NewFromInt(1)) {
		return 0, fmt.Errorf("%w, received %v", errStrengthBounds, strength)
	}
	amount := strength.Mul(decimal.NewFromInt(s.DefaultSize)).Floor().IntPart()
	if s.MaxSize > 0 && amount > s.MaxSize {
		amount = s.MaxSize
	}
	return amount, nil
}
