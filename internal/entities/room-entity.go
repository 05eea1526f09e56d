package entities

import "time"

type Room struct {
	ID        uint64
	Name      string
	Capacity  int
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Equipments []RoomEquipment
}

// RoomEquipment is a fixed association between a room and a quantity of
// equipment installed in it.
type RoomEquipment struct {
	EquipmentID   uint64
	EquipmentName string
	Mobile        bool
	Quantity      int
}
