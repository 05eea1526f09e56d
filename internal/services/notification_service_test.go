package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roombook/internal/dto"
	"roombook/internal/entities"
)

func notificationFixture() (*NotificationService, *fakeNotificationRepo, *fakeUserRepo, *fakeCache) {
	notificationRepo := &fakeNotificationRepo{}
	userRepo := &fakeUserRepo{
		users: []entities.User{
			{ID: 1, Username: "admin", Enabled: true},
			{ID: 2, Username: "j.brown", Enabled: true},
			{ID: 3, Username: "old.account", Enabled: false},
		},
	}
	cache := newFakeCache()
	svc := NewNotificationService(notificationRepo, userRepo, cache, zap.NewNop())
	return svc, notificationRepo, userRepo, cache
}

func TestGetUnreadCountCachesResult(t *testing.T) {
	svc, notificationRepo, _, cache := notificationFixture()
	ctx := context.Background()

	notificationRepo.Create(ctx, entities.Notification{UserID: 2, Type: entities.NotificationTypeManual})
	notificationRepo.Create(ctx, entities.Notification{UserID: 2, Type: entities.NotificationTypeManual})

	res, err := svc.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Count)
	assert.Equal(t, "2", cache.store["notifications:unread:2"])

	// A stale cache entry wins until invalidated.
	notificationRepo.Create(ctx, entities.Notification{UserID: 2, Type: entities.NotificationTypeManual})
	res, err = svc.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Count)
}

func TestMarkReadInvalidatesCache(t *testing.T) {
	svc, notificationRepo, _, cache := notificationFixture()
	ctx := context.Background()

	id, _ := notificationRepo.Create(ctx, entities.Notification{UserID: 2, Type: entities.NotificationTypeManual})

	_, err := svc.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	require.Contains(t, cache.store, "notifications:unread:2")

	require.NoError(t, svc.MarkRead(ctx, 2, id))
	assert.NotContains(t, cache.store, "notifications:unread:2")

	res, err := svc.GetUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), res.Count)
}

func TestBroadcastToAllEnabledUsers(t *testing.T) {
	svc, notificationRepo, _, _ := notificationFixture()
	ctx := context.Background()

	sent, err := svc.Broadcast(ctx, dto.BroadcastNotificationDTO{
		Title:   "Maintenance window",
		Message: "Booking is unavailable on Sunday morning.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	for _, n := range notificationRepo.notifications {
		assert.Equal(t, entities.NotificationTypeManual, n.Type)
		assert.NotEqual(t, uint64(3), n.UserID, "disabled users receive nothing")
	}
}

func TestBroadcastToExplicitUsers(t *testing.T) {
	svc, notificationRepo, _, _ := notificationFixture()

	sent, err := svc.Broadcast(context.Background(), dto.BroadcastNotificationDTO{
		Title:   "Room change",
		Message: "Your seminar moved to Seminar Room 2.",
		UserIDs: []uint64{2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, notificationRepo.notifications, 1)
	assert.Equal(t, uint64(2), notificationRepo.notifications[0].UserID)
}

func TestSoftDeleteHidesFromUserList(t *testing.T) {
	svc, notificationRepo, _, _ := notificationFixture()
	ctx := context.Background()

	id, _ := notificationRepo.Create(ctx, entities.Notification{UserID: 2, Type: entities.NotificationTypeManual})
	require.NoError(t, svc.DeleteNotification(ctx, 2, id))

	mine, _, err := svc.GetMyNotifications(ctx, 2, listAllFilter())
	require.NoError(t, err)
	assert.Empty(t, mine)

	// Admin view still sees the soft-deleted row.
	all, _, err := svc.GetAllNotifications(ctx, listAllFilter())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
