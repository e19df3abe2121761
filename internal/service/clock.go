package service

import "time"

// Clock supplies the current time. The rental service takes it as a
// dependency so the start-date-in-the-past rule is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
