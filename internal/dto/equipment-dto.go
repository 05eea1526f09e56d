package dto

import "github.com/aarondl/null/v8"

type EquipmentDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Mobile      bool    `json:"mobile"`
	ImageURL    *string `json:"image_url,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type CreateEquipmentDTO struct {
	Name        string      `json:"name" validate:"required,max=255"`
	Description null.String `json:"description"`
	Quantity    int         `json:"quantity" validate:"gte=0"`
	Mobile      bool        `json:"mobile"`
}

type UpdateEquipmentDTO struct {
	Name        *string     `json:"name" validate:"omitempty,max=255"`
	Description null.String `json:"description"`
	Quantity    *int        `json:"quantity" validate:"omitempty,gte=0"`
	Mobile      *bool       `json:"mobile"`
}

// AvailableEquipmentDTO is a mobile equipment row with the quantity still
// free within a queried time window.
type AvailableEquipmentDTO struct {
	Equipment EquipmentDTO `json:"equipment"`
	Remaining int          `json:"remaining"`
}
