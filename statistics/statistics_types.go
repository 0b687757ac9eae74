package statistics

import (
	"errors"
	"time"

	gctmath "github.com/marketmill/backtest/common/math"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

var (
	errNegativeRiskFreeRate  = errors.New("risk free rate cannot be negative")
	errInvalidPeriodsPerYear = errors.New("periods per year must be greater than zero")
	errAlreadyFinalised      = errors.New("statistics already finalised")
)

// Statistic folds events, transactions and equity snapshots into the final
// performance report as they happen, so the full series never needs to be
// held in memory
type Statistic struct {
	riskFreeRate   decimal.Decimal
	periodsPerYear int64

	returns     gctmath.Welford
	snapshots   int64
	degenerate  int64
	firstEquity decimal.Decimal
	lastEquity  decimal.Decimal
	peak        decimal.Decimal
	maxDrawdown decimal.Decimal

	wins            int64
	losses          int64
	grossProfit     decimal.Decimal
	grossLoss       decimal.Decimal
	largestWin      decimal.Decimal
	largestLoss     decimal.Decimal
	totalCommission decimal.Decimal

	ticks     int64
	signals   int64
	orders    int64
	fills     int64
	firstTime time.Time
	lastTime  time.Time

	finalised bool
	result    *Result
}

// EventCounts tallies how many events of each type passed through the run
type EventCounts struct {
	Ticks   int64 `json:"ticks"`
	Signals int64 `json:"signals"`
	Orders  int64 `json:"orders"`
	Fills   int64 `json:"fills"`
}

// Result is the final report of a run. Metrics that cannot be computed from
// what happened are null rather than zero so a missing sharpe cannot be
// mistaken for a flat one
type Result struct {
	StartTime         time.Time       `json:"start-time"`
	EndTime           time.Time       `json:"end-time"`
	InitialEquity     decimal.Decimal `json:"initial-equity"`
	FinalEquity       decimal.Decimal `json:"final-equity"`
	TotalReturn       null.Float64    `json:"total-return-percent"`
	AnnualisedSharpe  null.Float64    `json:"annualised-sharpe"`
	CAGR              null.Float64    `json:"cagr-percent"`
	MaxDrawdown       decimal.Decimal `json:"max-drawdown"`
	WinRate           null.Float64    `json:"win-rate"`
	ProfitFactor      null.Float64    `json:"profit-factor"`
	Wins              int64           `json:"wins"`
	Losses            int64           `json:"losses"`
	GrossProfit       decimal.Decimal `json:"gross-profit"`
	GrossLoss         decimal.Decimal `json:"gross-loss"`
	LargestWin        decimal.Decimal `json:"largest-win"`
	LargestLoss       decimal.Decimal `json:"largest-loss"`
	TotalCommission   decimal.Decimal `json:"total-commission"`
	DegenerateReturns int64           `json:"degenerate-returns,omitempty"`
	Events            EventCounts     `json:"events"`
}
