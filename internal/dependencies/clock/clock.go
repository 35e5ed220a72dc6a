package clock

import "time"

// Clock provides the time used to stamp games and moves
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time at millisecond precision, so a timestamp
// survives a round trip through JSON or SQLite unchanged
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
