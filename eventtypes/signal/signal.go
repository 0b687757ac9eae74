package signal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GetDirection returns the direction
func (s *Signal) GetDirection() Direction {
	return s.Direction
}

// GetStrength returns the conviction behind the signal
func (s *Signal) GetStrength() decimal.Decimal {
	return s.Strength
}

// GetPrice returns the reference price the signal was raised at
func (s *Signal) GetPrice() decimal.Decimal {
	return s.Price
}

// GetLimit returns the limit price, zero when unset
func (s *Signal) GetLimit() decimal.Decimal {
	return s.Limit
}

// GetStop returns the stop price, zero when unset
func (s *Signal) GetStop() decimal.Decimal {
	return s.Stop
}

// Validate rejects malformed signals before they reach the portfolio
func (s *Signal) Validate() error {
	switch s.Direction {
	case Long, Short, Exit:
	default:
		return fmt.Errorf("%w: %q", errInvalidDirection, s.Direction)
	}
	if s.Strength.IsNegative() || s.Strength.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %v", errStrengthOutOfRange, s.Strength)
	}
	return nil
}
