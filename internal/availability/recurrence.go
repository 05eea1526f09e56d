package availability

import (
	"errors"
	"time"
)

// Frequency represents supported recurrence intervals.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// MaxGeneratedDates caps every expansion regardless of the rule, so a far
// end date with a sparse weekday selection cannot loop unbounded. A series
// truncated by the cap is reported through the occurrence count, not an
// error.
const MaxGeneratedDates = 100

// MaxRequestedOccurrences bounds the count-based termination mode.
const MaxRequestedOccurrences = 52

var (
	ErrInvalidFrequency = errors.New("availability: invalid recurrence frequency")
	ErrNoWeekdays       = errors.New("availability: weekly recurrence requires at least one weekday")
	ErrOccurrencesRange = errors.New("availability: occurrences must be between 1 and 52")
	ErrMissingEndDate   = errors.New("availability: date-based termination requires an end date")
	ErrEndBeforeAnchor  = errors.New("availability: end date is before the anchor date")
)

// Rule describes how a recurring series is expanded from its anchor
// booking. Exactly one termination mode applies: ByOccurrences with a
// count, or an EndDate (inclusive, calendar-day granularity).
type Rule struct {
	Frequency     Frequency
	ByOccurrences bool
	Occurrences   int
	EndDate       *time.Time
	Weekdays      []time.Weekday
}

// Validate rejects rules the expansion is not defined for. Callers surface
// these as form-level validation failures before generating.
func (r Rule) Validate(anchor time.Time) error {
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return ErrInvalidFrequency
	}
	if r.Frequency == FrequencyWeekly && len(r.Weekdays) == 0 {
		return ErrNoWeekdays
	}
	if r.ByOccurrences {
		if r.Occurrences < 1 || r.Occurrences > MaxRequestedOccurrences {
			return ErrOccurrencesRange
		}
		return nil
	}
	if r.EndDate == nil {
		return ErrMissingEndDate
	}
	if dayOf(*r.EndDate).Before(dayOf(anchor)) {
		return ErrEndBeforeAnchor
	}
	return nil
}

// GenerateDates expands the rule into concrete occurrence days, in
// chronological order, always starting with the anchor's calendar day.
// Results carry day granularity; callers reapply the anchor's time of day
// to build each occurrence's [start, end) window.
//
// Monthly advancement uses native date normalization: an anchor on the 31st
// advancing into a shorter month rolls over into the following month.
func GenerateDates(rule Rule, anchor time.Time) []time.Time {
	current := dayOf(anchor)

	var endDay time.Time
	if !rule.ByOccurrences && rule.EndDate != nil {
		endDay = dayOf(*rule.EndDate)
	}

	withinEnd := func(d time.Time) bool {
		return rule.ByOccurrences || !d.After(endDay)
	}

	dates := make([]time.Time, 0, 8)
	count := 0

	for {
		if rule.ByOccurrences {
			if count >= rule.Occurrences {
				break
			}
		} else if current.After(endDay) {
			break
		}
		if len(dates) >= MaxGeneratedDates {
			break
		}

		switch rule.Frequency {
		case FrequencyDaily:
			if count > 0 {
				current = current.AddDate(0, 0, 1)
			}
			if !withinEnd(current) {
				return dates
			}
			dates = append(dates, current)
			count++

		case FrequencyWeekly:
			if count == 0 {
				dates = append(dates, current)
				count++
				continue
			}
			// Scan the next 7-day block for selected weekdays, then
			// advance the block.
			for i := 1; i <= 7; i++ {
				next := current.AddDate(0, 0, i)
				if !weekdaySelected(rule.Weekdays, next.Weekday()) {
					continue
				}
				if !withinEnd(next) {
					return dates
				}
				dates = append(dates, next)
				count++
				if rule.ByOccurrences && count >= rule.Occurrences {
					break
				}
				if len(dates) >= MaxGeneratedDates {
					return dates
				}
			}
			current = current.AddDate(0, 0, 7)

		case FrequencyMonthly:
			if count > 0 {
				current = current.AddDate(0, 1, 0)
			}
			if !withinEnd(current) {
				return dates
			}
			dates = append(dates, current)
			count++

		default:
			return dates
		}
	}

	return dates
}

// ApplyTimeOfDay rebuilds a concrete occurrence window from a generated day
// by reapplying the anchor's clock time and duration.
func ApplyTimeOfDay(day time.Time, anchorStart, anchorEnd time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(),
		anchorStart.Hour(), anchorStart.Minute(), 0, 0, anchorStart.Location())
	return start, start.Add(anchorEnd.Sub(anchorStart))
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func weekdaySelected(selected []time.Weekday, d time.Weekday) bool {
	for _, w := range selected {
		if w == d {
			return true
		}
	}
	return false
}
