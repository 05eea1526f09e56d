package dto

type NotificationDTO struct {
	ID        uint64  `json:"id"`
	UserID    uint64  `json:"user_id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	BookingID *uint64 `json:"booking_id,omitempty"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at"`
}

// BroadcastNotificationDTO is the admin manual-notification payload. With
// no user ids the notification goes to every enabled user.
type BroadcastNotificationDTO struct {
	Title   string   `json:"title" validate:"required,max=255"`
	Message string   `json:"message" validate:"required"`
	UserIDs []uint64 `json:"user_ids" validate:"omitempty,dive,required"`
}

type UnreadCountDTO struct {
	Count uint64 `json:"count"`
}

// NotificationTypeDTO describes one notification type for client pickers.
type NotificationTypeDTO struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
