package common

import (
	"errors"
	"time"
)

// Side dictates the direction of an order
type Side string

const (
	// Buy takes on exposure, lifting the ask
	Buy Side = "BUY"
	// Sell sheds exposure, hitting the bid
	Sell Side = "SELL"
	// UnknownSide is the zero value for an unset side
	UnknownSide Side = ""
)

var (
	// ErrNilArguments is a common error response to highlight that nils were passed in
	// when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDataType occurs when an unexpected event type reaches a handler
	ErrInvalidDataType = errors.New("invalid datatype received")
	// ErrInvalidSide occurs when an order or fill carries a side other than buy or sell
	ErrInvalidSide = errors.New("invalid side received")
)

// Event is the smallest unit the engine routes. Every tick, signal, order and
// fill implements it
type Event interface {
	GetOffset() int64
	SetOffset(int64)
	IsEvent() bool
	GetTime() time.Time
	GetSymbol() string
	GetReasons() []string
	GetConcatReasons() string
	AppendReason(string)
	AppendReasonf(string, ...any)
}

// Directioner dictates the side of an order
type Directioner interface {
	SetDirection(Side)
	GetDirection() Side
}
