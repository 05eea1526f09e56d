package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"roombook/internal/dto"
	"roombook/internal/entities"
	"roombook/internal/repositories"
	"roombook/pkg/types"
	"roombook/pkg/utils"
)

const unreadCountTTL = 30 * time.Second

type NotificationService struct {
	notificationRepository repositories.NotificationRepositoryInterface
	userRepository         repositories.UserRepositoryInterface
	cacheRepository        repositories.CacheRepositoryInterface
	logger                 *zap.Logger
}

func NewNotificationService(
	notificationRepository repositories.NotificationRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
		cacheRepository:        cacheRepository,
		logger:                 logger,
	}
}

func mapNotificationToDTO(n entities.Notification) dto.NotificationDTO {
	return dto.NotificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		BookingID: n.BookingID,
		Read:      n.Read,
		CreatedAt: utils.FormatDateTimeLocal(n.CreatedAt),
	}
}

func unreadCountKey(userID uint64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, userIDs ...uint64) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, unreadCountKey(id))
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cacheRepository.Del(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate unread count cache", zap.Error(err))
	}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uint64, filter types.Filter) ([]dto.NotificationDTO, uint64, error) {
	notifications, total, err := s.notificationRepository.GetForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, mapNotificationToDTO(n))
	}
	return result, total, nil
}

func (s *NotificationService) GetAllNotifications(ctx context.Context, filter types.Filter) ([]dto.NotificationDTO, uint64, error) {
	notifications, total, err := s.notificationRepository.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, mapNotificationToDTO(n))
	}
	return result, total, nil
}

// GetUnreadCount serves the badge counter polled by every client, so it
// goes through the cache first.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uint64) (dto.UnreadCountDTO, error) {
	key := unreadCountKey(userID)
	if cached, err := s.cacheRepository.Get(ctx, key); err == nil {
		if count, parseErr := strconv.ParseUint(cached, 10, 64); parseErr == nil {
			return dto.UnreadCountDTO{Count: count}, nil
		}
	}

	count, err := s.notificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return dto.UnreadCountDTO{}, err
	}

	if err := s.cacheRepository.Set(ctx, key, strconv.FormatUint(count, 10), unreadCountTTL); err != nil {
		s.logger.Warn("failed to cache unread count", zap.Uint64("user_id", userID), zap.Error(err))
	}
	return dto.UnreadCountDTO{Count: count}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint64) error {
	if err := s.notificationRepository.SetRead(ctx, userID, id, true); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *NotificationService) MarkUnread(ctx context.Context, userID, id uint64) error {
	if err := s.notificationRepository.SetRead(ctx, userID, id, false); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) error {
	if err := s.notificationRepository.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

// MarkAllReadAdmin marks every unread notification read, for all users.
// Per-user unread counters are not invalidated one by one; the cached
// values expire on their own within the TTL.
func (s *NotificationService) MarkAllReadAdmin(ctx context.Context) (int64, error) {
	return s.notificationRepository.MarkAllReadGlobal(ctx)
}

// NotificationTypes lists the known types so clients can build filters
// without hardcoding codes.
func (s *NotificationService) NotificationTypes() []dto.NotificationTypeDTO {
	return []dto.NotificationTypeDTO{
		{
			Code:        entities.NotificationTypeReminder24h,
			Name:        "24h booking reminder",
			Description: "Sent 24 hours before a booking starts",
		},
		{
			Code:        entities.NotificationTypeReminder1h,
			Name:        "1h booking reminder",
			Description: "Sent one hour before a booking starts",
		},
		{
			Code:        entities.NotificationTypeManual,
			Name:        "Manual notification",
			Description: "Created by an administrator",
		},
		{
			Code:        entities.NotificationTypeConflict,
			Name:        "Booking conflict",
			Description: "A booking request collided with an existing booking",
		},
	}
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, id uint64) error {
	if err := s.notificationRepository.SoftDelete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *NotificationService) HardDeleteNotification(ctx context.Context, id uint64) error {
	return s.notificationRepository.HardDelete(ctx, id)
}

// Broadcast creates a manual notification for the listed users, or for
// every enabled user when the list is empty.
func (s *NotificationService) Broadcast(ctx context.Context, payload dto.BroadcastNotificationDTO) (int, error) {
	userIDs := payload.UserIDs
	if len(userIDs) == 0 {
		var err error
		userIDs, err = s.userRepository.GetEnabledUserIDs(ctx)
		if err != nil {
			return 0, err
		}
	}

	notifications := make([]entities.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, entities.Notification{
			UserID:  userID,
			Type:    entities.NotificationTypeManual,
			Title:   payload.Title,
			Message: payload.Message,
		})
	}

	if err := s.notificationRepository.CreateBatch(ctx, notifications); err != nil {
		return 0, err
	}
	s.invalidateUnreadCount(ctx, userIDs...)
	return len(notifications), nil
}
