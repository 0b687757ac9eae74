package risk

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	errNegativePositionLimit = errors.New("maximum position size cannot be negative")
	errNegativeExposure      = errors.New("maximum exposure cannot be negative")
	errNegativeConcentration = errors.New("maximum concentration cannot be negative")
	errExceedsPositionLimit  = errors.New("order would exceed the maximum position size")
	errExceedsExposure       = errors.New("order would exceed the maximum gross exposure")
	errExceedsConcentration  = errors.New("order would exceed the maximum concentration in one symbol")
)

// Risk vets orders before they are sent for execution. Each limit is
// inactive at zero. MaxExposure and MaxConcentration are fractions of
// current equity, so 2 permits gross exposure of twice the account
type Risk struct {
	MaxPositionSize  int64
	MaxExposure      decimal.Decimal
	MaxConcentration decimal.Decimal
}
