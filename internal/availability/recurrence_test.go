package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRuleValidate(t *testing.T) {
	anchor := day(2025, time.January, 6)
	end := day(2025, time.February, 1)
	past := day(2024, time.December, 31)

	tcases := []struct {
		name string
		rule Rule
		want error
	}{
		{
			name: "valid daily by occurrences",
			rule: Rule{Frequency: FrequencyDaily, ByOccurrences: true, Occurrences: 4},
		},
		{
			name: "valid weekly by end date",
			rule: Rule{Frequency: FrequencyWeekly, EndDate: &end, Weekdays: []time.Weekday{time.Monday}},
		},
		{
			name: "unknown frequency",
			rule: Rule{Frequency: "yearly", ByOccurrences: true, Occurrences: 2},
			want: ErrInvalidFrequency,
		},
		{
			name: "weekly without weekdays",
			rule: Rule{Frequency: FrequencyWeekly, ByOccurrences: true, Occurrences: 2},
			want: ErrNoWeekdays,
		},
		{
			name: "zero occurrences",
			rule: Rule{Frequency: FrequencyDaily, ByOccurrences: true},
			want: ErrOccurrencesRange,
		},
		{
			name: "too many occurrences",
			rule: Rule{Frequency: FrequencyDaily, ByOccurrences: true, Occurrences: 53},
			want: ErrOccurrencesRange,
		},
		{
			name: "date mode without end date",
			rule: Rule{Frequency: FrequencyDaily},
			want: ErrMissingEndDate,
		},
		{
			name: "end date before anchor",
			rule: Rule{Frequency: FrequencyDaily, EndDate: &past},
			want: ErrEndBeforeAnchor,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate(anchor)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestGenerateDatesDaily(t *testing.T) {
	rule := Rule{Frequency: FrequencyDaily, ByOccurrences: true, Occurrences: 4}
	dates := GenerateDates(rule, day(2025, time.January, 1))

	require.Len(t, dates, 4)
	assert.Equal(t, day(2025, time.January, 1), dates[0])
	assert.Equal(t, day(2025, time.January, 2), dates[1])
	assert.Equal(t, day(2025, time.January, 3), dates[2])
	assert.Equal(t, day(2025, time.January, 4), dates[3])
}

func TestGenerateDatesWeekly(t *testing.T) {
	// Anchor is Monday 2025-01-06; selected Monday and Wednesday.
	rule := Rule{
		Frequency:     FrequencyWeekly,
		ByOccurrences: true,
		Occurrences:   5,
		Weekdays:      []time.Weekday{time.Monday, time.Wednesday},
	}
	dates := GenerateDates(rule, day(2025, time.January, 6))

	require.Len(t, dates, 5)
	assert.Equal(t, day(2025, time.January, 6), dates[0])
	assert.Equal(t, day(2025, time.January, 8), dates[1])
	assert.Equal(t, day(2025, time.January, 13), dates[2])
	assert.Equal(t, day(2025, time.January, 15), dates[3])
	assert.Equal(t, day(2025, time.January, 20), dates[4])
}

func TestGenerateDatesMonthly(t *testing.T) {
	rule := Rule{Frequency: FrequencyMonthly, ByOccurrences: true, Occurrences: 3}
	dates := GenerateDates(rule, day(2025, time.January, 15))

	require.Len(t, dates, 3)
	assert.Equal(t, day(2025, time.January, 15), dates[0])
	assert.Equal(t, day(2025, time.February, 15), dates[1])
	assert.Equal(t, day(2025, time.March, 15), dates[2])
}

func TestGenerateDatesMonthlyRollsOverShortMonths(t *testing.T) {
	// Native date normalization: Jan 31 + 1 month lands in early March.
	rule := Rule{Frequency: FrequencyMonthly, ByOccurrences: true, Occurrences: 2}
	dates := GenerateDates(rule, day(2025, time.January, 31))

	require.Len(t, dates, 2)
	assert.Equal(t, day(2025, time.January, 31), dates[0])
	assert.Equal(t, day(2025, time.March, 3), dates[1])
}

func TestGenerateDatesAnchorAlwaysFirst(t *testing.T) {
	anchor := day(2025, time.April, 17)
	end := day(2025, time.May, 30)

	rules := []Rule{
		{Frequency: FrequencyDaily, ByOccurrences: true, Occurrences: 1},
		{Frequency: FrequencyDaily, EndDate: &end},
		{Frequency: FrequencyWeekly, ByOccurrences: true, Occurrences: 3, Weekdays: []time.Weekday{time.Friday}},
		{Frequency: FrequencyWeekly, EndDate: &end, Weekdays: []time.Weekday{time.Sunday}},
		{Frequency: FrequencyMonthly, ByOccurrences: true, Occurrences: 2},
	}

	for _, rule := range rules {
		dates := GenerateDates(rule, anchor)
		require.NotEmpty(t, dates)
		assert.Equal(t, anchor, dates[0], "rule %+v must start with the anchor date", rule)
	}
}

func TestGenerateDatesEndDateNeverExceeded(t *testing.T) {
	end := day(2025, time.January, 20)

	tcases := []struct {
		name string
		rule Rule
	}{
		{
			name: "daily",
			rule: Rule{Frequency: FrequencyDaily, EndDate: &end},
		},
		{
			name: "weekly",
			rule: Rule{Frequency: FrequencyWeekly, EndDate: &end, Weekdays: []time.Weekday{time.Monday, time.Saturday}},
		},
		{
			name: "monthly",
			rule: Rule{Frequency: FrequencyMonthly, EndDate: &end},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			dates := GenerateDates(tc.rule, day(2025, time.January, 6))
			require.NotEmpty(t, dates)
			for _, d := range dates {
				assert.False(t, d.After(end), "date %s exceeds end date", d.Format("2006-01-02"))
			}
		})
	}
}

func TestGenerateDatesChronological(t *testing.T) {
	end := day(2025, time.March, 31)
	rule := Rule{
		Frequency: FrequencyWeekly,
		EndDate:   &end,
		Weekdays:  []time.Weekday{time.Tuesday, time.Thursday, time.Saturday},
	}

	dates := GenerateDates(rule, day(2025, time.January, 6))
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]), "dates must be strictly increasing")
	}
}

func TestGenerateDatesSafetyCap(t *testing.T) {
	farEnd := day(2030, time.December, 31)

	tcases := []struct {
		name string
		rule Rule
	}{
		{
			name: "daily until far end date",
			rule: Rule{Frequency: FrequencyDaily, EndDate: &farEnd},
		},
		{
			name: "weekly all days until far end date",
			rule: Rule{
				Frequency: FrequencyWeekly,
				EndDate:   &farEnd,
				Weekdays: []time.Weekday{
					time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
					time.Thursday, time.Friday, time.Saturday,
				},
			},
		},
		{
			name: "monthly until far end date",
			rule: Rule{Frequency: FrequencyMonthly, EndDate: &farEnd},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			dates := GenerateDates(tc.rule, day(2025, time.January, 1))
			assert.LessOrEqual(t, len(dates), MaxGeneratedDates)
		})
	}
}

func TestApplyTimeOfDay(t *testing.T) {
	anchorStart := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	anchorEnd := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	start, end := ApplyTimeOfDay(day(2025, time.March, 17), anchorStart, anchorEnd)
	assert.Equal(t, time.Date(2025, time.March, 17, 14, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 17, 15, 30, 0, 0, time.UTC), end)
}
