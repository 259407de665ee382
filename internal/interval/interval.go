// Package interval holds the half-open time range every booking and
// availability decision is expressed in.
package interval

import (
	"time"

	apperrors "parkinglot/internal/errors"
)

// Interval is a half-open time range [Start, End). Start is inclusive, End
// exclusive, so back-to-back bookings that touch at an endpoint never overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New validates that start is strictly before end.
func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, apperrors.New(apperrors.KindInvalidInterval, "start time must be before end time")
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open intervals share any instant.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Duration returns the exact length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// DurationHours returns the billable length in whole hours, any remainder
// rounded up. [10:00, 12:01) bills as 3 hours.
func (i Interval) DurationHours() int {
	d := i.Duration()
	hours := int(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	return hours
}
