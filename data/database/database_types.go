package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/marketmill/backtest/eventtypes/tick"
)

var (
	errNoDSN    = errors.New("database feed requires a dsn")
	errNoSymbol = errors.New("database feed requires a symbol")
	errBadDates = errors.New("start date must not be after end date")
)

const defaultTable = "ticks"

// Settings describes where the tick history lives. Table defaults to "ticks"
// and either date bound may be left zero to leave that side open
type Settings struct {
	DSN       string
	Table     string
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
}

// Feed streams ticks out of a postgres table in timestamp order. Rows are
// scanned lazily so a long history never loads fully into memory
type Feed struct {
	db      *sql.DB
	rows    *sql.Rows
	symbol  string
	next    *tick.Tick
	nextErr error
}
