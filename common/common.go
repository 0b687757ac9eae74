package common

import "strings"

// Opposite returns the side that unwinds this one
func (s Side) Opposite() Side {
	switch s {
	case Buy:
		return Sell
	case Sell:
		return Buy
	}
	return UnknownSide
}

// Sign returns the position delta direction of the side, 1 for buys, -1 for
// sells and 0 for anything else
func (s Side) Sign() int64 {
	switch s {
	case Buy:
		return 1
	case Sell:
		return -1
	}
	return 0
}

// Validate checks the side is one the simulated venue can act on
func (s Side) Validate() error {
	if s != Buy && s != Sell {
		return ErrInvalidSide
	}
	return nil
}

// String implements the stringer interface
func (s Side) String() string {
	return string(s)
}

// Lower returns the side in lowercase
func (s Side) Lower() string {
	return strings.ToLower(string(s))
}
