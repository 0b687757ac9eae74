package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsValidate(t *testing.T) {
	t.Parallel()
	s := &Settings{}
	assert.ErrorIs(t, s.Validate(), errNoDSN)

	s.DSN = "postgres://localhost/backtest?sslmode=disable"
	assert.ErrorIs(t, s.Validate(), errNoSymbol)

	s.Symbol = "AAPL"
	assert.NoError(t, s.Validate())

	s.StartDate = time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	s.EndDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, s.Validate(), errBadDates)

	s.StartDate, s.EndDate = s.EndDate, s.StartDate
	assert.NoError(t, s.Validate())
}

func TestBuildQuery(t *testing.T) {
	t.Parallel()
	query, args := buildQuery(&Settings{Symbol: "AAPL"})
	assert.Equal(t,
		`SELECT ts, bid, ask, last, volume FROM "ticks" WHERE symbol = $1 ORDER BY ts ASC`,
		query)
	assert.Equal(t, []any{"AAPL"}, args)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	query, args = buildQuery(&Settings{
		Table:     "equity_ticks",
		Symbol:    "AAPL",
		StartDate: start,
		EndDate:   end,
	})
	assert.Equal(t,
		`SELECT ts, bid, ask, last, volume FROM "equity_ticks" WHERE symbol = $1 AND ts >= $2 AND ts <= $3 ORDER BY ts ASC`,
		query)
	assert.Equal(t, []any{"AAPL", start, end}, args)

	// only the lower bound
	query, args = buildQuery(&Settings{Symbol: "AAPL", StartDate: start})
	assert.Equal(t,
		`SELECT ts, bid, ask, last, volume FROM "ticks" WHERE symbol = $1 AND ts >= $2 ORDER BY ts ASC`,
		query)
	assert.Equal(t, []any{"AAPL", start}, args)
}
