package jsonl

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/marketmill/backtest/data"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/shopspring/decimal"
)

// NewFeed opens the file at path and primes the first tick
func NewFeed(path string) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	feed := &Feed{
		file:    f,
		scanner: bufio.NewScanner(f),
	}
	feed.advance()
	if feed.next == nil && feed.nextErr == nil {
		feed.Close()
		return nil, fmt.Errorf("%w: %v", errEmptyFile, path)
	}
	return feed, nil
}

// HasNext reports whether another tick, or an error describing why there
// cannot be one, remains
func (f *Feed) HasNext() bool {
	return f.next != nil || f.nextErr != nil
}

// Next returns the next tick in the file
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

// Close releases the underlying file
func (f *Feed) Close() error {
	return f.file.Close()
}

// advance reads lines until it parses a tick, hits an error or runs out of
// file. Blank lines are skipped
func (f *Feed) advance() {
	f.next = nil
	f.nextErr = nil
	for f.scanner.Scan() {
		f.line++
		line := strings.TrimSpace(f.scanner.Text())
		if line == "" {
			continue
		}
		t, err := parseTick([]byte(line))
		if err != nil {
			f.nextErr = fmt.Errorf("%v line %v: %w", f.file.Name(), f.line, err)
			return
		}
		f.next = t
		return
	}
	if err := f.scanner.Err(); err != nil {
		f.nextErr = err
	}
}

func parseTick(line []byte) (*tick.Tick, error) {
	symbol, err := jsonparser.GetString(line, "symbol")
	if err != nil {
		return nil, fmt.Errorf("symbol: %w", err)
	}
	ts, err := jsonparser.GetString(line, "timestamp")
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	when, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	t := &tick.Tick{
		Base: &event.Base{
			Symbol: symbol,
			Time:   when,
		},
	}
	if t.Bid, err = parseDecimal(line, "bid"); err != nil {
		return nil, err
	}
	if t.Ask, err = parseDecimal(line, "ask"); err != nil {
		return nil, err
	}
	if t.Last, err = parseDecimal(line, "last"); err != nil {
		return nil, err
	}
	if t.Volume, err = parseDecimal(line, "volume"); err != nil {
		return nil, err
	}
	return t, nil
}

// parseDecimal pulls the raw bytes of a JSON number so values like 10.01 hit
// the decimal parser exactly as written
func parseDecimal(line []byte, key string) (decimal.Decimal, error) {
	raw, dataType, _, err := jsonparser.Get(line, key)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%v: %w", key, err)
	}
	if dataType != jsonparser.Number {
		return decimal.Zero, fmt.Errorf("%v: %w", key, errNotANumber)
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%v: %w", key, err)
	}
	return d, nil
}
