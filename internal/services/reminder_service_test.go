package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roombook/internal/entities"
)

func strPtr(s string) *string { return &s }

func reminderFixture(start time.Time) (*ReminderService, *fakeBookingRepo, *fakeNotificationRepo, *fakeMailer) {
	bookingRepo := &fakeBookingRepo{
		bookings: []entities.Booking{
			{
				ID:        1,
				Title:     "Project sync",
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Organizer: "j.brown",
				RoomID:    3,
				Room:      &entities.Room{ID: 3, Name: "Seminar Room 1"},
			},
		},
	}
	userRepo := &fakeUserRepo{
		users: []entities.User{
			{ID: 7, Username: "j.brown", Email: strPtr("j.brown@example.edu"), Enabled: true},
		},
	}
	notificationRepo := &fakeNotificationRepo{}
	mail := &fakeMailer{}

	svc := NewReminderService(bookingRepo, userRepo, notificationRepo, mail, zap.NewNop())
	return svc, bookingRepo, notificationRepo, mail
}

func TestAdvancePassCreatesNotificationAndEmail(t *testing.T) {
	svc, _, notificationRepo, mail := reminderFixture(time.Now().Add(24 * time.Hour))

	require.NoError(t, svc.RunAdvancePass(context.Background()))

	require.Len(t, notificationRepo.notifications, 1)
	n := notificationRepo.notifications[0]
	assert.Equal(t, entities.NotificationTypeReminder24h, n.Type)
	assert.Equal(t, uint64(7), n.UserID)
	require.NotNil(t, n.BookingID)
	assert.Equal(t, uint64(1), *n.BookingID)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "j.brown@example.edu", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].Subject, "Project sync")
}

func TestAdvancePassIgnoresBookingsOutsideWindow(t *testing.T) {
	svc, _, notificationRepo, mail := reminderFixture(time.Now().Add(48 * time.Hour))

	require.NoError(t, svc.RunAdvancePass(context.Background()))

	assert.Empty(t, notificationRepo.notifications)
	assert.Empty(t, mail.sent)
}

func TestImminentPassUsesOneHourWindow(t *testing.T) {
	svc, _, notificationRepo, _ := reminderFixture(time.Now().Add(time.Hour))

	require.NoError(t, svc.RunImminentPass(context.Background()))

	require.Len(t, notificationRepo.notifications, 1)
	assert.Equal(t, entities.NotificationTypeReminder1h, notificationRepo.notifications[0].Type)
}

func TestReminderPassIsIdempotent(t *testing.T) {
	svc, _, notificationRepo, mail := reminderFixture(time.Now().Add(24 * time.Hour))

	require.NoError(t, svc.RunAdvancePass(context.Background()))
	require.NoError(t, svc.RunAdvancePass(context.Background()))

	assert.Len(t, notificationRepo.notifications, 1)
	assert.Len(t, mail.sent, 1)
}

func TestReminderSkipsUnknownOrganizer(t *testing.T) {
	svc, bookingRepo, notificationRepo, mail := reminderFixture(time.Now().Add(24 * time.Hour))
	bookingRepo.bookings[0].Organizer = "nobody"

	require.NoError(t, svc.RunAdvancePass(context.Background()))

	assert.Empty(t, notificationRepo.notifications)
	assert.Empty(t, mail.sent)
}

func TestReminderSkipsDisabledUser(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)
	svc, _, notificationRepo, _ := reminderFixture(start)

	userRepo := &fakeUserRepo{
		users: []entities.User{{ID: 7, Username: "j.brown", Enabled: false}},
	}
	svc.userRepository = userRepo

	require.NoError(t, svc.RunAdvancePass(context.Background()))
	assert.Empty(t, notificationRepo.notifications)
}

func TestReminderKeepsNotificationWhenEmailFails(t *testing.T) {
	svc, _, notificationRepo, mail := reminderFixture(time.Now().Add(24 * time.Hour))
	mail.failAll = true

	require.NoError(t, svc.RunAdvancePass(context.Background()))

	// The in-app notification still lands; only delivery is lossy.
	assert.Len(t, notificationRepo.notifications, 1)
	assert.Empty(t, mail.sent)
}
