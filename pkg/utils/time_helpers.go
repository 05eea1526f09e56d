package utils

import (
	"fmt"
	"time"
)

// DateTimeLocalLayout is the wire-friendly local date-time format used by
// booking start/end fields (minute precision, no zone designator).
const DateTimeLocalLayout = "2006-01-02T15:04"

// RoundUpToNextHalfHour advances a timestamp to the next half-hour boundary
// (14:00 -> 14:30, 14:29 -> 14:30, 14:31 -> 15:00). Seconds are dropped.
func RoundUpToNextHalfHour(t time.Time) time.Time {
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	if t.Minute() < 30 {
		return base.Add(30 * time.Minute)
	}
	return base.Add(time.Hour)
}

// FormatDateTimeLocal renders t at minute precision in its own location.
func FormatDateTimeLocal(t time.Time) string {
	return t.Format(DateTimeLocalLayout)
}

// ParseDateTimeLocal accepts the minute-precision layout and, as a
// fallback, full RFC 3339 timestamps.
func ParseDateTimeLocal(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLocalLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatRange renders a human-readable interval, collapsing the date when
// start and end fall on the same day.
func FormatRange(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s %s–%s", start.Format("02/01/2006"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s – %s", start.Format("02/01/2006 15:04"), end.Format("02/01/2006 15:04"))
}
