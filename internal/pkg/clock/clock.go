package clock

import "time"

// Clocker supplies the current time.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

// New returns the production clock.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// FixedClocker always reports the same instant. Intended for tests.
type FixedClocker struct {
	T time.Time
}

// Now returns the pinned instant.
func (f FixedClocker) Now() time.Time {
	return f.T
}
