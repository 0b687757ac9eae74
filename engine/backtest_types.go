package engine

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/data"
	"github.com/marketmill/backtest/eventqueue"
	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/exchange"
	"github.com/marketmill/backtest/portfolio"
	"github.com/marketmill/backtest/portfolio/holdings"
	"github.com/marketmill/backtest/statistics"
	"github.com/marketmill/backtest/strategies"
	"github.com/marketmill/backtest/strategies/base"
)

// stages label where in the pipeline a diagnostic was raised
const (
	stagePortfolio  = "portfolio"
	stageExchange   = "exchange"
	stageStatistics = "statistics"
	stageEnd        = "end-of-data"
)

var (
	errNilConfig      = errors.New("unable to set up backtest with nil config")
	errFeedUnset      = errors.New("no data feed loaded")
	errStrategyUnset  = errors.New("no strategy loaded")
	errPortfolioUnset = errors.New("no portfolio loaded")
	errExchangeUnset  = errors.New("no exchange loaded")
	errStatisticUnset = errors.New("no statistic handler loaded")
	errQueueUnset     = errors.New("no event queue loaded")
	errTickOutOfOrder = errors.New("tick timestamps must not decrease")
)

// BackTest contains all the handlers needed to run a backtest
type BackTest struct {
	Nickname   string
	Feed       data.Feed
	Strategy   strategies.Handler
	Portfolio  *portfolio.Portfolio
	Exchange   *exchange.Exchange
	Statistic  *statistics.Statistic
	EventQueue *eventqueue.Queue

	log          zerolog.Logger
	latest       tick.Event
	lastTime     time.Time
	transactions []Transaction
	diagnostics  []Diagnostic
}

// Transaction is one fill as it hit the book, the run's trade log entry
type Transaction struct {
	Offset     int64           `json:"offset"`
	Time       time.Time       `json:"time"`
	Symbol     string          `json:"symbol"`
	Direction  common.Side     `json:"direction"`
	Amount     int64           `json:"amount"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	Realised   decimal.Decimal `json:"realised-pnl"`
	OrderID    string          `json:"order-id"`
}

// Diagnostic records why the pipeline declined to act at some point in the
// run. Diagnostics never stop a run
type Diagnostic struct {
	Offset int64     `json:"offset"`
	Time   time.Time `json:"time"`
	Stage  string    `json:"stage"`
	Reason string    `json:"reason"`
}

// UnfilledOrder describes an order still resting in the book when the data
// ran out
type UnfilledOrder struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Direction  common.Side     `json:"direction"`
	Type       order.Type      `json:"type"`
	Amount     int64           `json:"amount"`
	LimitPrice decimal.Decimal `json:"limit-price"`
	StopPrice  decimal.Decimal `json:"stop-price"`
	Reason     string          `json:"reason"`
}

// Report is the full outcome of a run
type Report struct {
	Nickname       string             `json:"nickname"`
	Strategy       string             `json:"strategy"`
	StrategyState  base.State         `json:"strategy-state"`
	Result         *statistics.Result `json:"result"`
	Holding        holdings.Holding   `json:"holding"`
	Transactions   []Transaction      `json:"transactions"`
	Diagnostics    []Diagnostic       `json:"diagnostics,omitempty"`
	UnfilledOrders []UnfilledOrder    `json:"unfilled-orders,omitempty"`
}
