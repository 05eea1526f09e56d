package entities

import "time"

const (
	NotificationTypeReminder24h = "booking_reminder_24h"
	NotificationTypeReminder1h  = "booking_reminder_1h"
	NotificationTypeManual      = "manual"
	NotificationTypeConflict    = "conflict_alert"
)

func NotificationTypes() []string {
	return []string{
		NotificationTypeReminder24h,
		NotificationTypeReminder1h,
		NotificationTypeManual,
		NotificationTypeConflict,
	}
}

func IsValidNotificationType(t string) bool {
	for _, known := range NotificationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

type Notification struct {
	ID        uint64
	UserID    uint64
	Type      string
	Title     string
	Message   string
	BookingID *uint64
	Read      bool
	Deleted   bool
	CreatedAt time.Time
}
