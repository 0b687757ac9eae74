package holdings

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errInitialFundsNotPositive = errors.New("initial funds must be greater than zero")
	errInvalidFillAmount       = errors.New("fill amount must be positive")
)

// Position is the net exposure held in one symbol. Quantity is signed,
// negative for shorts. A position that has been fully closed stays in the
// book at quantity zero so its realised PNL is not lost
type Position struct {
	Symbol        string          `json:"symbol"`
	Quantity      int64           `json:"quantity"`
	AverageCost   decimal.Decimal `json:"average-cost"`
	LastPrice     decimal.Decimal `json:"last-price"`
	RealisedPNL   decimal.Decimal `json:"realised-pnl"`
	UnrealisedPNL decimal.Decimal `json:"unrealised-pnl"`
}

// Holding is the full account state, cash plus every position held
type Holding struct {
	Offset         int64                `json:"offset"`
	Timestamp      time.Time            `json:"timestamp"`
	InitialFunds   decimal.Decimal      `json:"initial-funds"`
	RemainingFunds decimal.Decimal      `json:"remaining-funds"`
	TotalFees      decimal.Decimal      `json:"total-fees"`
	Positions      map[string]*Position `json:"positions"`
}

// EquitySnapshot is the account marked to market at a point in the run
type EquitySnapshot struct {
	Offset    int64           `json:"offset"`
	Timestamp time.Time       `json:"timestamp"`
	Cash      decimal.Decimal `json:"cash"`
	Equity    decimal.Decimal `json:"equity"`
}
