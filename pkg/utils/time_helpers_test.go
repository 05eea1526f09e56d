package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundUpToNextHalfHour(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "on the hour", in: "2025-03-10T14:00", want: "2025-03-10T14:30"},
		{name: "just past the hour", in: "2025-03-10T14:01", want: "2025-03-10T14:30"},
		{name: "just before half", in: "2025-03-10T14:29", want: "2025-03-10T14:30"},
		{name: "exactly half", in: "2025-03-10T14:30", want: "2025-03-10T15:00"},
		{name: "past half", in: "2025-03-10T14:31", want: "2025-03-10T15:00"},
		{name: "rolls over midnight", in: "2025-03-10T23:45", want: "2025-03-11T00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseDateTimeLocal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDateTimeLocal(RoundUpToNextHalfHour(in)))
		})
	}
}

func TestRoundUpToNextHalfHourDropsSeconds(t *testing.T) {
	in := time.Date(2025, 3, 10, 14, 10, 59, 123, time.Local)
	got := RoundUpToNextHalfHour(in)
	assert.Equal(t, 0, got.Second())
	assert.Equal(t, 0, got.Nanosecond())
	assert.Equal(t, 30, got.Minute())
}

func TestParseDateTimeLocalRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"2025-01-01T00:00",
		"2025-06-15T09:30",
		"2025-12-31T23:59",
	} {
		parsed, err := ParseDateTimeLocal(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, FormatDateTimeLocal(parsed))
	}
}

func TestParseDateTimeLocalAcceptsSecondsAndRFC3339(t *testing.T) {
	withSeconds, err := ParseDateTimeLocal("2025-06-15T09:30:45")
	require.NoError(t, err)
	assert.Equal(t, 45, withSeconds.Second())

	rfc, err := ParseDateTimeLocal("2025-06-15T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 9, rfc.UTC().Hour())

	_, err = ParseDateTimeLocal("15/06/2025 09:30")
	assert.Error(t, err)
}

func TestFormatRange(t *testing.T) {
	start := time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local)

	sameDay := FormatRange(start, start.Add(2*time.Hour))
	assert.Contains(t, sameDay, "15/06/2025")
	assert.Contains(t, sameDay, "09:30")
	assert.Contains(t, sameDay, "11:30")

	crossDay := FormatRange(start, start.Add(26*time.Hour))
	assert.Contains(t, crossDay, "15/06/2025 09:30")
	assert.Contains(t, crossDay, "16/06/2025 11:30")
}
