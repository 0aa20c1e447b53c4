package timeutil

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Calendar helpers work on civil dates and never consult the host time zone.
// Anything that needs a time.Time goes through UTC.

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return d, nil
}

// NextDay returns the calendar day after d
func NextDay(d civil.Date) civil.Date {
	return d.AddDays(1)
}

// Weekday returns the day of the week of d
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// InRange reports whether d lies in the closed range [start, end]
func InRange(d, start, end civil.Date) bool {
	return !d.Before(start) && !d.After(end)
}

// DatesBetween enumerates every date of the closed range [start, end].
// An inverted range yields nothing.
func DatesBetween(start, end civil.Date) []civil.Date {
	if end.Before(start) {
		return nil
	}
	dates := make([]civil.Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// DateToTime returns midnight UTC of d
func DateToTime(d civil.Date) time.Time {
	return d.In(time.UTC)
}

// CompareDates returns -1, 0 or 1 as a is before, equal to or after b
func CompareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
