package models

import "time"

// Interval is a half-open [Start, End) time window. End is strictly after
// Start once constructed; the value is owned by the request that created it.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }
