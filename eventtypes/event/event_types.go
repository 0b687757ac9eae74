package event

import "time"

// Base is the underlying event across all event types. The offset is the
// arrival sequence the queue assigns on push and is what breaks ordering ties
// between events sharing a timestamp
type Base struct {
	Offset  int64     `json:"-"`
	Symbol  string    `json:"symbol"`
	Time    time.Time `json:"timestamp"`
	Reasons []string  `json:"reasons,omitempty"`
}
