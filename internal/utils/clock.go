package utils

import "time"

// Clock abstracts the current time so that time-dependent logic
// (lockouts, session expiry) can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock. Returned times are in UTC.
type SystemClock struct{}

// NewSystemClock returns the wall clock.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now implements [Clock].
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
