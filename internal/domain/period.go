package domain

import "time"

// Period is the span of time a rental occupies. A period is either closed,
// with an inclusive end date, or open-ended: the vehicle is still out and
// no return date is known, so the period occupies all time from Start onward.
type Period struct {
	Start time.Time
	End   time.Time // zero when Open
	Open  bool
}

// OpenPeriod returns an open-ended period starting on the given date.
func OpenPeriod(start time.Time) Period {
	return Period{Start: DateOnly(start), Open: true}
}

// ClosedPeriod returns a period covering start through end, both inclusive.
func ClosedPeriod(start, end time.Time) Period {
	return Period{Start: DateOnly(start), End: DateOnly(end)}
}

// DateOnly truncates t to its calendar date in UTC. Rental periods are
// compared at day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Valid reports whether the period is well-formed: a closed period must not
// end before it starts.
func (p Period) Valid() bool {
	return p.Open || !p.End.Before(p.Start)
}
