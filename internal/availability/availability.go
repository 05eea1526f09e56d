// Package availability holds the pure room-availability computations: the
// half-open interval overlap check used both by the advisory client check
// and the authoritative create-time check, and the recurrence expansion for
// recurring bookings.
package availability

import "time"

// Booking is the window slice of a stored booking that availability checks
// need. RoomID zero means the booking references no room and never blocks.
type Booking struct {
	ID     uint64
	RoomID uint64
	Start  time.Time
	End    time.Time
}

// Overlaps reports whether the half-open intervals [start, end) and
// [bStart, bEnd) intersect.
func Overlaps(start, end, bStart, bEnd time.Time) bool {
	return start.Before(bEnd) && end.After(bStart)
}

// IsRoomAvailable reports whether the room is free for [start, end) given
// the known booking set. Bookings on other rooms never block.
func IsRoomAvailable(roomID uint64, start, end time.Time, bookings []Booking) bool {
	_, conflict := FindConflict(roomID, start, end, bookings)
	return !conflict
}

// FindConflict returns the id of the first booking blocking [start, end)
// on the room, if any.
func FindConflict(roomID uint64, start, end time.Time, bookings []Booking) (uint64, bool) {
	for _, b := range bookings {
		if b.RoomID == 0 || b.RoomID != roomID {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return b.ID, true
		}
	}
	return 0, false
}
