package entities

import "time"

type Booking struct {
	ID        uint64
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Attendees int
	Organizer string
	RoomID    uint64
	CreatedAt time.Time
	UpdatedAt time.Time

	Room       *Room
	Equipments []BookingEquipment
}

// BookingEquipment reserves a quantity of mobile equipment for a
// sub-interval of the booking window.
type BookingEquipment struct {
	ID            uint64
	BookingID     uint64
	EquipmentID   uint64
	EquipmentName string
	Quantity      int
	StartTime     *time.Time
	EndTime       *time.Time
}
