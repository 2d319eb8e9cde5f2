// Package clock abstracts the wall clock so that date-sensitive logic
// (today resolution, event expiry, day rollover) is testable.
package clock

import "time"

// Clock yields the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Tests use it to pin "today".
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }
