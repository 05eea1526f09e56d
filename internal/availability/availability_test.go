package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func TestIsRoomAvailable(t *testing.T) {
	bookings := []Booking{
		{ID: 1, RoomID: 10, Start: mustTime(t, "2025-03-10T10:00"), End: mustTime(t, "2025-03-10T11:00")},
		{ID: 2, RoomID: 20, Start: mustTime(t, "2025-03-10T09:00"), End: mustTime(t, "2025-03-10T18:00")},
		{ID: 3, RoomID: 0, Start: mustTime(t, "2025-03-10T00:00"), End: mustTime(t, "2025-03-11T00:00")},
	}

	tcases := []struct {
		name      string
		roomID    uint64
		start     string
		end       string
		available bool
	}{
		{
			name:   "adjacent window after booking is free",
			roomID: 10, start: "2025-03-10T11:00", end: "2025-03-10T12:00",
			available: true,
		},
		{
			name:   "window overlapping tail is blocked",
			roomID: 10, start: "2025-03-10T10:59", end: "2025-03-10T11:59",
			available: false,
		},
		{
			name:   "window overlapping head is blocked",
			roomID: 10, start: "2025-03-10T09:30", end: "2025-03-10T10:01",
			available: false,
		},
		{
			name:   "window fully inside booking is blocked",
			roomID: 10, start: "2025-03-10T10:15", end: "2025-03-10T10:45",
			available: false,
		},
		{
			name:   "window engulfing booking is blocked",
			roomID: 10, start: "2025-03-10T09:00", end: "2025-03-10T12:00",
			available: false,
		},
		{
			name:   "adjacent window before booking is free",
			roomID: 10, start: "2025-03-10T09:00", end: "2025-03-10T10:00",
			available: true,
		},
		{
			name:   "other rooms never block",
			roomID: 30, start: "2025-03-10T09:00", end: "2025-03-10T18:00",
			available: true,
		},
		{
			name:   "bookings without a room never block",
			roomID: 30, start: "2025-03-10T00:00", end: "2025-03-11T00:00",
			available: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsRoomAvailable(tc.roomID, mustTime(t, tc.start), mustTime(t, tc.end), bookings)
			assert.Equal(t, tc.available, got)
		})
	}
}

func TestIsRoomAvailableIdempotent(t *testing.T) {
	bookings := []Booking{
		{ID: 1, RoomID: 7, Start: mustTime(t, "2025-03-10T14:30"), End: mustTime(t, "2025-03-10T15:30")},
	}
	start := mustTime(t, "2025-03-10T14:00")
	end := mustTime(t, "2025-03-10T15:00")

	first := IsRoomAvailable(7, start, end, bookings)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsRoomAvailable(7, start, end, bookings))
	}
	assert.False(t, first)
}

func TestFindConflictReturnsBlockingBooking(t *testing.T) {
	bookings := []Booking{
		{ID: 4, RoomID: 5, Start: mustTime(t, "2025-03-10T14:30"), End: mustTime(t, "2025-03-10T15:30")},
	}

	id, conflict := FindConflict(5, mustTime(t, "2025-03-10T14:00"), mustTime(t, "2025-03-10T15:00"), bookings)
	assert.True(t, conflict)
	assert.Equal(t, uint64(4), id)

	_, conflict = FindConflict(6, mustTime(t, "2025-03-10T14:00"), mustTime(t, "2025-03-10T15:00"), bookings)
	assert.False(t, conflict)
}
