package config

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// SlippageFixed charges a constant rate of the fill price
	SlippageFixed = "fixed"
	// SlippageVolumeImpact scales the rate with order size against tick volume
	SlippageVolumeImpact = "volume-impact"

	defaultPeriodsPerYear = 252
)

var (
	errNoDataSource        = errors.New("no data source settings provided")
	errAmbiguousDataSource = errors.New("multiple data source settings provided, choose one")
	errNoDataPath          = errors.New("jsonl data requires a full-path")
	errNoDSN               = errors.New("database data requires a dsn")
	errNoSymbol            = errors.New("database data requires a symbol")
	errBadDate             = errors.New("start date must not be after end date")
	errBadInitialFunds     = errors.New("initial funds must be greater than zero")
	errBadOrderSize        = errors.New("default order size must be greater than zero")
	errNegativeLimit       = errors.New("limits cannot be negative")
	errUnknownSlippage     = errors.New("unknown slippage model")
	errNegativeRate        = errors.New("rates cannot be negative")
	errBadPeriodsPerYear   = errors.New("periods per year cannot be negative")
)

// Config defines an individual backtest run
type Config struct {
	Nickname          string            `json:"nickname"`
	StrategySettings  StrategySettings  `json:"strategy-settings"`
	DataSettings      DataSettings      `json:"data-settings"`
	PortfolioSettings PortfolioSettings `json:"portfolio-settings"`
	ExchangeSettings  ExchangeSettings  `json:"exchange-settings"`
	StatisticSettings StatisticSettings `json:"statistic-settings"`
}

// StrategySettings contains the strategy to load and any custom settings it
// understands
type StrategySettings struct {
	Name           string         `json:"name"`
	CustomSettings map[string]any `json:"custom-settings,omitempty"`
}

// DataSettings selects the tick source for the run. Exactly one source must
// be set
type DataSettings struct {
	JSONLData    *JSONLData    `json:"jsonl-data,omitempty"`
	DatabaseData *DatabaseData `json:"database-data,omitempty"`
}

// JSONLData defines a line-delimited json tick file source
type JSONLData struct {
	FullPath string `json:"full-path"`
}

// DatabaseData defines a postgres tick source. Zero dates leave that bound
// open
type DatabaseData struct {
	DSN       string    `json:"dsn"`
	Table     string    `json:"table"`
	Symbol    string    `json:"symbol"`
	StartDate time.Time `json:"start-date"`
	EndDate   time.Time `json:"end-date"`
}

// PortfolioSettings contains cash and sizing rules. Zero limit values switch
// that limit off
type PortfolioSettings struct {
	InitialFunds     decimal.Decimal `json:"initial-funds"`
	DefaultOrderSize int64           `json:"default-order-size"`
	MaximumOrderSize int64           `json:"maximum-order-size"`
	MaxPositionSize  int64           `json:"max-position-size"`
	MaxExposure      decimal.Decimal `json:"max-exposure"`
	MaxConcentration decimal.Decimal `json:"max-concentration"`
}

// ExchangeSettings contains the simulated venue's cost model
type ExchangeSettings struct {
	CommissionRate    decimal.Decimal `json:"commission-rate"`
	MinimumCommission decimal.Decimal `json:"minimum-commission"`
	SlippageModel     string          `json:"slippage-model"`
	SlippageRate      decimal.Decimal `json:"slippage-rate"`
	ImpactRate        decimal.Decimal `json:"impact-rate"`
}

// StatisticSettings contains the performance metric inputs. A zero
// PeriodsPerYear defaults to 252 trading days on validation
type StatisticSettings struct {
	RiskFreeRate   decimal.Decimal `json:"risk-free-rate"`
	PeriodsPerYear int64           `json:"periods-per-year"`
}
