package script

import (
	"errors"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/marketmill/backtest/strategies/base"
)

const (
	// Name is the strategy name
	Name        = "script"
	description = `Delegates signal decisions to a tengo script compiled once and run per tick`

	scriptPathKey = "script-path"
	timeoutKey    = "timeout-ms"

	defaultTimeout = time.Second
)

var errNoScript = errors.New("script strategy requires a script-path custom setting")

// Strategy runs a tengo script against every tick. The script reads the
// globals symbol, bid, ask, last, volume and position, and assigns direction
// to one of LONG, SHORT or EXIT plus a strength between 0 and 1 to raise a
// signal. Leaving direction empty raises nothing
type Strategy struct {
	base.Strategy
	path     string
	timeout  time.Duration
	compiled *tengo.Compiled
	position int64
}
