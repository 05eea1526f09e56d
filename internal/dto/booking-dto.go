package dto

type ShortRoomDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type BookingEquipmentDTO struct {
	EquipmentID uint64  `json:"equipment_id"`
	Name        string  `json:"name,omitempty"`
	Quantity    int     `json:"quantity"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
}

type BookingDTO struct {
	ID         uint64                `json:"id"`
	Title      string                `json:"title"`
	StartTime  string                `json:"start_time"`
	EndTime    string                `json:"end_time"`
	Attendees  int                   `json:"attendees"`
	Organizer  string                `json:"organizer"`
	Room       ShortRoomDTO          `json:"room"`
	Equipments []BookingEquipmentDTO `json:"booking_equipments"`
	CreatedAt  string                `json:"created_at,omitempty"`
}

type BookingEquipmentInput struct {
	EquipmentID uint64  `json:"equipment_id" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	StartTime   *string `json:"start_time" validate:"omitempty,datetime_local"`
	EndTime     *string `json:"end_time" validate:"omitempty,datetime_local"`
}

type CreateBookingDTO struct {
	Title      string                  `json:"title" validate:"required,max=255"`
	RoomID     uint64                  `json:"room_id" validate:"required"`
	StartTime  string                  `json:"start_time" validate:"required,datetime_local"`
	EndTime    string                  `json:"end_time" validate:"required,datetime_local"`
	Attendees  int                     `json:"attendees" validate:"gte=1"`
	Organizer  string                  `json:"organizer" validate:"omitempty,max=255"`
	Equipments []BookingEquipmentInput `json:"booking_equipments" validate:"omitempty,dive"`
}

type UpdateBookingDTO struct {
	Title      *string                 `json:"title" validate:"omitempty,max=255"`
	RoomID     *uint64                 `json:"room_id"`
	StartTime  *string                 `json:"start_time" validate:"omitempty,datetime_local"`
	EndTime    *string                 `json:"end_time" validate:"omitempty,datetime_local"`
	Attendees  *int                    `json:"attendees" validate:"omitempty,gte=1"`
	Equipments []BookingEquipmentInput `json:"booking_equipments" validate:"omitempty,dive"`
}

// RecurrenceRuleDTO mirrors the recurring-booking authoring form. Exactly
// one of occurrences / end_date applies, selected by by_occurrences.
type RecurrenceRuleDTO struct {
	Frequency     string  `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	ByOccurrences bool    `json:"by_occurrences"`
	Occurrences   int     `json:"occurrences" validate:"omitempty,gte=1,lte=52"`
	EndDate       *string `json:"end_date" validate:"omitempty"`
	Weekdays      []int   `json:"weekdays" validate:"omitempty,dive,gte=0,lte=6"`
}

type CreateRecurringBookingDTO struct {
	CreateBookingDTO
	Rule RecurrenceRuleDTO `json:"rule" validate:"required"`
}

// OccurrenceResultDTO reports the outcome of one occurrence in a recurring
// batch. Occurrences are created independently; partial success is normal
// and nothing is rolled back.
type OccurrenceResultDTO struct {
	Date      string  `json:"date"`
	BookingID *uint64 `json:"booking_id,omitempty"`
	Created   bool    `json:"created"`
	Error     string  `json:"error,omitempty"`
}

type RecurringBookingResultDTO struct {
	Requested int                   `json:"requested"`
	Created   int                   `json:"created"`
	Results   []OccurrenceResultDTO `json:"results"`
}
