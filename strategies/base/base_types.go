package base

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrCustomSettingsUnsupported used when custom settings are found in
	// the config for a strategy that takes none
	ErrCustomSettingsUnsupported = errors.New("custom settings not supported")
	// ErrInvalidCustomSettings used when bad custom settings are provided
	ErrInvalidCustomSettings = errors.New("invalid custom settings")
	// ErrStrategyNotFound used when there is no strategy by the requested
	// name
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrTooMuchBadData used when the feed contains too many unusable
	// prices for the strategy to keep going
	ErrTooMuchBadData = errors.New("strategy cannot continue, too much bad price data")
)

// Strategy is the base implementation shared by all strategies. It keeps a
// bounded rolling window of observed prices so indicator strategies never
// hold the full history
type Strategy struct {
	lookback int
	prices   []decimal.Decimal
	badData  int64
}

// State is a diagnostic snapshot of a strategy's internals, reported at the
// end of a run and never acted on
type State struct {
	Name    string         `json:"name"`
	Details map[string]any `json:"details,omitempty"`
}
