package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marketmill/backtest/strategies"
	"github.com/marketmill/backtest/strategies/base"
)

// ReadConfigFromFile will take a config from a path
func ReadConfigFromFile(path string) (*Config, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(fileData)
}

// LoadConfig unmarshalls byte data into a config struct
func LoadConfig(data []byte) (resp *Config, err error) {
	err = json.Unmarshal(data, &resp)
	return resp, err
}

// Validate checks all config settings and applies defaults where a zero value
// has a sensible one
func (c *Config) Validate() error {
	err := c.validateStrategySettings()
	if err != nil {
		return err
	}
	err = c.validateDataSettings()
	if err != nil {
		return err
	}
	err = c.validatePortfolioSettings()
	if err != nil {
		return err
	}
	err = c.validateExchangeSettings()
	if err != nil {
		return err
	}
	return c.validateStatisticSettings()
}

func (c *Config) validateStrategySettings() error {
	strats := strategies.GetStrategies()
	for i := range strats {
		if strings.EqualFold(strats[i].Name(), c.StrategySettings.Name) {
			return nil
		}
	}
	return fmt.Errorf("strategy '%v' %w", c.StrategySettings.Name, base.ErrStrategyNotFound)
}

func (c *Config) validateDataSettings() error {
	jsonl := c.DataSettings.JSONLData
	db := c.DataSettings.DatabaseData
	switch {
	case jsonl == nil && db == nil:
		return errNoDataSource
	case jsonl != nil && db != nil:
		return errAmbiguousDataSource
	case jsonl != nil:
		if jsonl.FullPath == "" {
			return errNoDataPath
		}
	case db != nil:
		if db.DSN == "" {
			return errNoDSN
		}
		if db.Symbol == "" {
			return errNoSymbol
		}
		if !db.StartDate.IsZero() && !db.EndDate.IsZero() && db.StartDate.After(db.EndDate) {
			return fmt.Errorf("%w, received start %v end %v", errBadDate, db.StartDate, db.EndDate)
		}
	}
	return nil
}

func (c *Config) validatePortfolioSettings() error {
	p := &c.PortfolioSettings
	if p.InitialFunds.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w, received %v", errBadInitialFunds, p.InitialFunds)
	}
	if p.DefaultOrderSize <= 0 {
		return fmt.Errorf("%w, received %v", errBadOrderSize, p.DefaultOrderSize)
	}
	if p.MaximumOrderSize < 0 || p.MaxPositionSize < 0 {
		return errNegativeLimit
	}
	if p.MaxExposure.IsNegative() || p.MaxConcentration.IsNegative() {
		return errNegativeLimit
	}
	return nil
}

func (c *Config) validateExchangeSettings() error {
	e := &c.ExchangeSettings
	if e.CommissionRate.IsNegative() ||
		e.MinimumCommission.IsNegative() ||
		e.SlippageRate.IsNegative() ||
		e.ImpactRate.IsNegative() {
		return errNegativeRate
	}
	switch e.SlippageModel {
	case "", SlippageFixed, SlippageVolumeImpact:
		return nil
	}
	return fmt.Errorf("%w '%v'", errUnknownSlippage, e.SlippageModel)
}

func (c *Config) validateStatisticSettings() error {
	s := &c.StatisticSettings
	if s.RiskFreeRate.IsNegative() {
		return errNegativeRate
	}
	if s.PeriodsPerYear < 0 {
		return fmt.Errorf("%w, received %v", errBadPeriodsPerYear, s.PeriodsPerYear)
	}
	if s.PeriodsPerYear == 0 {
		s.PeriodsPerYear = defaultPeriodsPerYear
	}
	return nil
}
