package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"roombook/internal/entities"
	"roombook/internal/repositories"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/mailer"
	"roombook/pkg/utils"
)

// Reminder windows are wider than their nominal lead time so that a pass
// running on a coarse schedule cannot skip over a booking.
const (
	advanceWindowStart = 23 * time.Hour
	advanceWindowEnd   = 25 * time.Hour

	imminentWindowStart = 45 * time.Minute
	imminentWindowEnd   = 75 * time.Minute
)

type ReminderService struct {
	bookingRepository      repositories.BookingRepositoryInterface
	userRepository         repositories.UserRepositoryInterface
	notificationRepository repositories.NotificationRepositoryInterface
	mailer                 mailer.Mailer
	logger                 *zap.Logger
}

func NewReminderService(
	bookingRepository repositories.BookingRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	notificationRepository repositories.NotificationRepositoryInterface,
	mailer mailer.Mailer,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		bookingRepository:      bookingRepository,
		userRepository:         userRepository,
		notificationRepository: notificationRepository,
		mailer:                 mailer,
		logger:                 logger,
	}
}

// RunAdvancePass reminds about bookings starting roughly a day from now.
func (s *ReminderService) RunAdvancePass(ctx context.Context) error {
	return s.run(ctx, advanceWindowStart, advanceWindowEnd, entities.NotificationTypeReminder24h, "in 24 hours")
}

// RunImminentPass reminds about bookings starting within the hour.
func (s *ReminderService) RunImminentPass(ctx context.Context) error {
	return s.run(ctx, imminentWindowStart, imminentWindowEnd, entities.NotificationTypeReminder1h, "in 1 hour")
}

func (s *ReminderService) run(ctx context.Context, lead, leadEnd time.Duration, notificationType, lede string) error {
	now := time.Now()
	bookings, err := s.bookingRepository.FindStartingBetween(ctx, now.Add(lead), now.Add(leadEnd))
	if err != nil {
		return err
	}

	var sent int
	for _, booking := range bookings {
		if err := s.remind(ctx, booking, notificationType, lede); err != nil {
			s.logger.Error("failed to send reminder",
				zap.Uint64("booking_id", booking.ID),
				zap.String("type", notificationType),
				zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("reminder pass finished",
		zap.String("type", notificationType),
		zap.Int("candidates", len(bookings)),
		zap.Int("sent", sent))
	return nil
}

func (s *ReminderService) remind(ctx context.Context, booking entities.Booking, notificationType, lede string) error {
	// Organizer is a username; bookings whose organizer has no account get
	// no reminder.
	user, err := s.userRepository.FindByUsername(ctx, booking.Organizer)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if !user.Enabled {
		return nil
	}

	exists, err := s.notificationRepository.ExistsForBooking(ctx, user.ID, booking.ID, notificationType)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	roomName := ""
	if booking.Room != nil {
		roomName = booking.Room.Name
	}
	bookingID := booking.ID
	title := fmt.Sprintf("Reminder: %q starts %s", booking.Title, lede)
	message := fmt.Sprintf("%s in %s, %s.", booking.Title, roomName,
		utils.FormatRange(booking.StartTime, booking.EndTime))

	if _, err := s.notificationRepository.Create(ctx, entities.Notification{
		UserID:    user.ID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		BookingID: &bookingID,
	}); err != nil {
		return err
	}

	if user.Email != nil && *user.Email != "" {
		if err := s.mailer.Send(*user.Email, title, message); err != nil {
			s.logger.Warn("reminder email delivery failed",
				zap.Uint64("booking_id", booking.ID),
				zap.String("recipient", *user.Email),
				zap.Error(err))
		}
	}
	return nil
}
