package event

import (
	"fmt"
	"strings"
	"time"
)

// GetOffset returns the arrival sequence of the event
func (b *Base) GetOffset() int64 {
	return b.Offset
}

// SetOffset sets the arrival sequence of the event
func (b *Base) SetOffset(o int64) {
	b.Offset = o
}

// IsEvent returns whether the event is an event
func (b *Base) IsEvent() bool {
	return true
}

// GetTime returns the time of the event
func (b *Base) GetTime() time.Time {
	return b.Time
}

// GetSymbol returns the symbol the event concerns
func (b *Base) GetSymbol() string {
	return b.Symbol
}

// GetReasons returns each individual reason the event was raised or modified
func (b *Base) GetReasons() []string {
	return b.Reasons
}

// GetConcatReasons joins together all reasons
func (b *Base) GetConcatReasons() string {
	return strings.Join(b.Reasons, ". ")
}

// AppendReason adds reasoning for a decision to the event
func (b *Base) AppendReason(y string) {
	b.Reasons = append(b.Reasons, y)
}

// AppendReasonf adds formatted reasoning for a decision to the event
func (b *Base) AppendReasonf(y string, addons ...any) {
	y = fmt.Sprintf(y, addons...)
	b.Reasons = append(b.Reasons, y)
}
