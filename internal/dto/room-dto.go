package dto

type RoomEquipmentDTO struct {
	EquipmentID uint64 `json:"equipment_id"`
	Name        string `json:"name,omitempty"`
	Mobile      bool   `json:"mobile"`
	Quantity    int    `json:"quantity"`
}

type RoomDTO struct {
	ID         uint64             `json:"id"`
	Name       string             `json:"name"`
	Capacity   int                `json:"capacity"`
	ImageURL   *string            `json:"image_url,omitempty"`
	Equipments []RoomEquipmentDTO `json:"room_equipments"`
	CreatedAt  string             `json:"created_at,omitempty"`
	UpdatedAt  string             `json:"updated_at,omitempty"`
}

type RoomEquipmentInput struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
}

type CreateRoomDTO struct {
	Name       string               `json:"name" validate:"required,max=255"`
	Capacity   int                  `json:"capacity" validate:"gte=0"`
	Equipments []RoomEquipmentInput `json:"room_equipments" validate:"omitempty,dive"`
}

type UpdateRoomDTO struct {
	Name       *string              `json:"name" validate:"omitempty,max=255"`
	Capacity   *int                 `json:"capacity" validate:"omitempty,gte=0"`
	Equipments []RoomEquipmentInput `json:"room_equipments" validate:"omitempty,dive"`
}
