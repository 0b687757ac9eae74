package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketmill/backtest/config"
	"github.com/marketmill/backtest/exchange/slippage"
	"github.com/marketmill/backtest/strategies/base"
	"github.com/marketmill/backtest/strategies/buyandhold"
	"github.com/marketmill/backtest/strategies/smacross"
)

const tickFixture = `{"symbol":"AAPL","timestamp":"2021-01-04T09:30:00Z","bid":9.99,"ask":10.01,"last":10,"volume":1000}
{"symbol":"AAPL","timestamp":"2021-01-04T09:31:00Z","bid":10.19,"ask":10.21,"last":10.2,"volume":800}
`

func writeTickFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ticks.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func testConfig(t *testing.T, nickname string) *config.Config {
	t.Helper()
	return &config.Config{
		Nickname: nickname,
		StrategySettings: config.StrategySettings{
			Name: buyandhold.Name,
		},
		DataSettings: config.DataSettings{
			JSONLData: &config.JSONLData{FullPath: writeTickFile(t, tickFixture)},
		},
		PortfolioSettings: config.PortfolioSettings{
			InitialFunds:     decimal.NewFromInt(10000),
			DefaultOrderSize: 10,
		},
		ExchangeSettings: config.ExchangeSettings{
			CommissionRate:    decimal.NewFromFloat(0.001),
			MinimumCommission: decimal.NewFromInt(1),
			SlippageModel:     config.SlippageFixed,
		},
		StatisticSettings: config.StatisticSettings{
			RiskFreeRate: decimal.NewFromFloat(0.02),
		},
	}
}

func TestNewFromConfigNil(t *testing.T) {
	t.Parallel()
	_, err := NewFromConfig(context.Background(), nil, zerolog.Nop())
	assert.ErrorIs(t, err, errNilConfig)
}

func TestNewFromConfigInvalid(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, "invalid")
	cfg.DataSettings = config.DataSettings{}
	_, err := NewFromConfig(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "no data source")

	cfg = testConfig(t, "invalid")
	cfg.StrategySettings.Name = "does-not-exist"
	_, err = NewFromConfig(context.Background(), cfg, zerolog.Nop())
	assert.ErrorIs(t, err, base.ErrStrategyNotFound)

	cfg = testConfig(t, "invalid")
	cfg.DataSettings.JSONLData.FullPath = filepath.Join(t.TempDir(), "missing.jsonl")
	_, err = NewFromConfig(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewFromConfigRunsEndToEnd(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, "end-to-end")
	bt, err := NewFromConfig(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "end-to-end", bt.Nickname)
	require.NoError(t, bt.Run(context.Background()))

	report, err := bt.Report()
	require.NoError(t, err)
	assert.Equal(t, buyandhold.Name, report.Strategy)
	assert.Equal(t, buyandhold.Name, report.StrategyState.Name)
	assert.Equal(t, int64(2), report.Result.Events.Ticks)
	assert.Equal(t, int64(1), report.Result.Events.Fills)
	assert.Equal(t, int64(10), report.Holding.Positions["AAPL"].Quantity)
	// 10 units at the 10.01 ask, commission floored up to the minimum of 1
	if !report.Holding.TotalFees.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected '%v' received '%v'", 1, report.Holding.TotalFees)
	}
	expectedCash := decimal.RequireFromString("9898.9")
	if !report.Holding.RemainingFunds.Equal(expectedCash) {
		t.Errorf("expected '%v' received '%v'", expectedCash, report.Holding.RemainingFunds)
	}
	if !report.Result.TotalCommission.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected '%v' received '%v'", 1, report.Result.TotalCommission)
	}
}

func TestNewFromConfigCustomSettings(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, "custom")
	cfg.StrategySettings.Name = smacross.Name
	cfg.StrategySettings.CustomSettings = map[string]any{
		"fast-period": 3.0,
		"slow-period": 5.0,
	}
	bt, err := NewFromConfig(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, smacross.Name, bt.Strategy.Name())

	// settings a strategy does not support are tolerated, not fatal
	cfg = testConfig(t, "unsupported")
	cfg.StrategySettings.CustomSettings = map[string]any{"anything": 1.0}
	_, err = NewFromConfig(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	cfg = testConfig(t, "bad-custom")
	cfg.StrategySettings.Name = smacross.Name
	cfg.StrategySettings.CustomSettings = map[string]any{"fast-period": "fast"}
	_, err = NewFromConfig(context.Background(), cfg, zerolog.Nop())
	assert.ErrorIs(t, err, base.ErrInvalidCustomSettings)
}

func TestSlippageModelSelection(t *testing.T) {
	t.Parallel()
	model := slippageModel(&config.ExchangeSettings{
		SlippageModel: config.SlippageVolumeImpact,
		SlippageRate:  decimal.NewFromFloat(0.001),
		ImpactRate:    decimal.NewFromFloat(0.1),
	})
	assert.IsType(t, &slippage.VolumeImpact{}, model)

	model = slippageModel(&config.ExchangeSettings{SlippageModel: config.SlippageFixed})
	assert.IsType(t, &slippage.Fixed{}, model)

	model = slippageModel(&config.ExchangeSettings{})
	assert.IsType(t, &slippage.Fixed{}, model)
}
