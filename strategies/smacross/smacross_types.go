package smacross

import (
	"errors"

	"github.com/marketmill/backtest/strategies/base"
)

const (
	// Name is the strategy name
	Name        = "smacross"
	description = `Goes long when the fast moving average crosses above the slow one and exits when it crosses back below`

	fastPeriodKey = "fast-period"
	slowPeriodKey = "slow-period"

	defaultFastPeriod = 10
	defaultSlowPeriod = 30
)

var errBadPeriods = errors.New("fast period must be greater than zero and less than the slow period")

// Strategy trades simple moving average crossovers. It tracks its own
// position from the fills it is shown so a signal is only raised when the
// stance actually needs to change
type Strategy struct {
	base.Strategy
	fastPeriod int
	slowPeriod int
	position   int64
}
