package engine

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/marketmill/backtest/config"
	"github.com/marketmill/backtest/data"
	"github.com/marketmill/backtest/data/database"
	"github.com/marketmill/backtest/data/jsonl"
	"github.com/marketmill/backtest/exchange"
	"github.com/marketmill/backtest/exchange/slippage"
	"github.com/marketmill/backtest/portfolio"
	"github.com/marketmill/backtest/portfolio/risk"
	"github.com/marketmill/backtest/portfolio/size"
	"github.com/marketmill/backtest/statistics"
	"github.com/marketmill/backtest/strategies"
	"github.com/marketmill/backtest/strategies/base"
)

// NewFromConfig takes a run config and wires every handler a backtest needs.
// ctx only bounds setup work such as the database connection, not the run
func NewFromConfig(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*BackTest, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bt := New()
	bt.Nickname = cfg.Nickname
	bt.SetLogger(logger)

	var err error
	bt.Feed, err = loadFeed(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bt.Strategy, err = strategies.LoadStrategyByName(cfg.StrategySettings.Name)
	if err != nil {
		return nil, err
	}
	if cfg.StrategySettings.CustomSettings != nil {
		err = bt.Strategy.SetCustomSettings(cfg.StrategySettings.CustomSettings)
		if err != nil && !errors.Is(err, base.ErrCustomSettingsUnsupported) {
			return nil, err
		}
	}

	sizeManager := &size.Size{
		DefaultSize: cfg.PortfolioSettings.DefaultOrderSize,
		MaxSize:     cfg.PortfolioSettings.MaximumOrderSize,
	}
	if err = sizeManager.Validate(); err != nil {
		return nil, err
	}
	riskManager := &risk.Risk{
		MaxPositionSize:  cfg.PortfolioSettings.MaxPositionSize,
		MaxExposure:      cfg.PortfolioSettings.MaxExposure,
		MaxConcentration: cfg.PortfolioSettings.MaxConcentration,
	}
	if err = riskManager.Validate(); err != nil {
		return nil, err
	}
	bt.Portfolio, err = portfolio.Setup(sizeManager, riskManager, cfg.PortfolioSettings.InitialFunds)
	if err != nil {
		return nil, err
	}

	bt.Exchange, err = exchange.Setup(
		slippageModel(&cfg.ExchangeSettings),
		cfg.ExchangeSettings.CommissionRate,
		cfg.ExchangeSettings.MinimumCommission)
	if err != nil {
		return nil, err
	}

	bt.Statistic, err = statistics.Setup(
		cfg.StatisticSettings.RiskFreeRate,
		cfg.StatisticSettings.PeriodsPerYear)
	if err != nil {
		return nil, err
	}
	return bt, nil
}

// loadFeed opens the configured tick source. Validate has already ensured
// exactly one source is set
func loadFeed(ctx context.Context, cfg *config.Config) (data.Feed, error) {
	if cfg.DataSettings.JSONLData != nil {
		return jsonl.NewFeed(cfg.DataSettings.JSONLData.FullPath)
	}
	db := cfg.DataSettings.DatabaseData
	return database.NewFeed(ctx, database.Settings{
		DSN:       db.DSN,
		Table:     db.Table,
		Symbol:    db.Symbol,
		StartDate: db.StartDate,
		EndDate:   db.EndDate,
	})
}

func slippageModel(s *config.ExchangeSettings) slippage.Model {
	if s.SlippageModel == config.SlippageVolumeImpact {
		return &slippage.VolumeImpact{Base: s.SlippageRate, Impact: s.ImpactRate}
	}
	return &slippage.Fixed{Rate: s.SlippageRate}
}
