package jsonl

import (
	"bufio"
	"errors"
	"os"

	"github.com/marketmill/backtest/eventtypes/tick"
)

var (
	errNotANumber = errors.New("field is not a number")
	errEmptyFile  = errors.New("file contains no data")
)

// Feed streams ticks from a file holding one JSON object per line, eg
//
//	{"symbol":"AAPL","timestamp":"2020-01-01T09:30:00Z","bid":9.99,"ask":10.01,"last":10,"volume":100}
//
// Lines are parsed lazily so large files never load fully into memory. Price
// fields are read as raw bytes and parsed straight into decimals to avoid a
// float64 round trip
type Feed struct {
	file    *os.File
	scanner *bufio.Scanner
	line    int
	next    *tick.Tick
	nextErr error
}
