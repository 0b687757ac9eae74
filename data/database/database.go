package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/marketmill/backtest/data"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/shopspring/decimal"
)

// Validate checks the settings are usable before a connection is attempted
func (s *Settings) Validate() error {
	if s.DSN == "" {
		return errNoDSN
	}
	if s.Symbol == "" {
		return errNoSymbol
	}
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.StartDate.After(s.EndDate) {
		return fmt.Errorf("%w: %v after %v", errBadDates, s.StartDate, s.EndDate)
	}
	return nil
}

// NewFeed connects to the database, issues the range query and primes the
// first tick
func NewFeed(ctx context.Context, settings Settings) (*Feed, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open("postgres", settings.DSN)
	if err != nil {
		return nil, err
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	query, args := buildQuery(&settings)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		db.Close()
		return nil, err
	}
	f := &Feed{
		db:     db,
		rows:   rows,
		symbol: settings.Symbol,
	}
	f.advance()
	return f, nil
}

// buildQuery assembles the range query. The table name cannot be a bind
// parameter so it is quoted as an identifier instead
func buildQuery(settings *Settings) (string, []any) {
	table := settings.Table
	if table == "" {
		table = defaultTable
	}
	query := fmt.Sprintf("SELECT ts, bid, ask, last, volume FROM %s WHERE symbol = $1",
		pq.QuoteIdentifier(table))
	args := []any{settings.Symbol}
	if !settings.StartDate.IsZero() {
		args = append(args, settings.StartDate)
		query += fmt.Sprintf(" AND ts >= $%d", len(args))
	}
	if !settings.EndDate.IsZero() {
		args = append(args, settings.EndDate)
		query += fmt.Sprintf(" AND ts <= $%d", len(args))
	}
	return query + " ORDER BY ts ASC", args
}

// HasNext reports whether another tick, or an error describing why there
// cannot be one, remains
func (f *Feed) HasNext() bool {
	return f.next != nil || f.nextErr != nil
}

// Next returns the next tick in the result set
func (f *Feed) Next() (*tick.Tick, error) {
	if f.nextErr != nil {
		err := f.nextErr
		f.nextErr = nil
		return nil, err
	}
	if f.next == nil {
		return nil, data.ErrNoMoreData
	}
	t := f.next
	f.advance()
	return t, nil
}

// Close releases the result set and the connection pool
func (f *Feed) Close() error {
	if f.rows != nil {
		if err := f.rows.Close(); err != nil {
			f.db.Close()
			return err
		}
	}
	return f.db.Close()
}

func (f *Feed) advance() {
	f.next = nil
	f.nextErr = nil
	if !f.rows.Next() {
		f.nextErr = f.rows.Err()
		return
	}
	t := &tick.Tick{
		Base: &event.Base{Symbol: f.symbol},
	}
	// numeric columns scan as text so decimals arrive without a float64
	// round trip
	var bid, ask, last, volume string
	if err := f.rows.Scan(&t.Time, &bid, &ask, &last, &volume); err != nil {
		f.nextErr = err
		return
	}
	var err error
	if t.Bid, err = decimal.NewFromString(bid); err != nil {
		f.nextErr = fmt.Errorf("bid: %w", err)
		return
	}
	if t.Ask, err = decimal.NewFromString(ask); err != nil {
		f.nextErr = fmt.Errorf("ask: %w", err)
		return
	}
	if t.Last, err = decimal.NewFromString(last); err != nil {
		f.nextErr = fmt.Errorf("last: %w", err)
		return
	}
	if t.Volume, err = decimal.NewFromString(volume); err != nil {
		f.nextErr = fmt.Errorf("volume: %w", err)
		return
	}
	f.next = t
}
