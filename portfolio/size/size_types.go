package size

import "errors"

var (
	errNoDefaultSize  = errors.New("default order size must be greater than zero")
	errNegativeMax    = errors.New("maximum order size cannot be negative")
	errNilSignal      = errors.New("cannot size a nil signal")
	errUnknownStance  = errors.New("cannot size an unrecognised signal direction")
	errStrengthBounds = errors.New("signal strength must be between 0 and 1")
)

// Size turns signals into order quantities. DefaultSize is the unit count a
// full strength signal produces and MaxSize caps any single order, zero
// meaning uncapped
type Size struct {
	DefaultSize int64
	MaxSize     int64
}
